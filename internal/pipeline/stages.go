// internal/pipeline/stages.go
// Package pipeline собирает инструкции транзакции покупки через временный WSOL-аккаунт.
package pipeline

// Stage: шаг сборки транзакции.
type Stage string

const (
	StageComputeBudget Stage = "compute_budget"
	StageFund          Stage = "fund"
	StageInitialize    Stage = "initialize"
	StageCreateATA     Stage = "create_ata"
	StageSwap          Stage = "swap"
	StageClose         Stage = "close"
	StageTip           Stage = "tip"
)

// Метки инструкций в итоговой транзакции.
const (
	LabelComputeLimit = "compute_limit"
	LabelComputePrice = "compute_price"
	LabelCreateWSOL   = "create_wsol"
	LabelInitWSOL     = "init_wsol"
	LabelCreateATA    = "create_ata"
	LabelSwap         = "raydium_swap"
	LabelCloseWSOL    = "close_wsol"
	LabelTip          = "jito_tip"
)

// Stages возвращает шаги, выбранные планом, в порядке исполнения:
// compute budget → fund → initialize → create ATA → [swap] → close → tip.
func Stages(plan Plan) []Stage {
	stages := make([]Stage, 0, 7)
	if plan.ComputeUnitLimit > 0 || plan.ComputeUnitPrice > 0 {
		stages = append(stages, StageComputeBudget)
	}
	stages = append(stages, StageFund, StageInitialize, StageCreateATA)
	if !plan.SkipSwap {
		stages = append(stages, StageSwap)
	}
	stages = append(stages, StageClose)
	if plan.TipEnabled() {
		stages = append(stages, StageTip)
	}
	return stages
}
