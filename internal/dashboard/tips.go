package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

func brl(v float64) string {
	return ptBR.Sprintf("R$ %v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// buildTips derives the budget tips shown under the dashboard totals.
func buildTips(s Summary) []string {
	tips := []string{}

	if s.TotalIncome == 0 && s.TotalExpense == 0 {
		return append(tips, "Registre suas rendas e despesas para acompanhar o mês.")
	}

	if s.Balance < 0 {
		tips = append(tips, ptBR.Sprintf("Atenção: você gastou %s a mais do que ganhou neste mês.", brl(-s.Balance)))
	} else if s.TotalIncome > 0 && s.TotalExpense > 0.8*s.TotalIncome {
		tips = append(tips, "Seus gastos já passam de 80% da renda. Revise as despesas antes do fim do mês.")
	}

	if s.TotalIncome > 0 && s.NonEssentialExpense > 0.3*s.TotalIncome {
		tips = append(tips, ptBR.Sprintf("Gastos não essenciais somam %s, mais de 30%% da renda. Cortar aqui é o caminho mais rápido.", brl(s.NonEssentialExpense)))
	}

	if len(s.Categories) > 0 && s.TotalExpense > 0 {
		top := s.Categories[0]
		if top.Total > 0.4*s.TotalExpense {
			tips = append(tips, ptBR.Sprintf("A categoria %q concentra %s dos seus gastos.", top.Category, brl(top.Total)))
		}
	}

	if s.Balance > 0 {
		tips = append(tips, ptBR.Sprintf("Sobraram %s. Que tal guardar uma parte em uma meta?", brl(s.Balance)))
	}

	return tips
}
