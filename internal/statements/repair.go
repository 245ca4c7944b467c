package statements

import "github.com/eurostatements/statementcore/pkg/models"

// Repair fills in any of a statement row's canonical items that are
// missing but recoverable from an accounting identity the row already has
// both other sides of, one identity per canonical statement kind.
func Repair(kind models.StatementKind, row models.StatementRow) models.StatementRow {
	switch kind {
	case models.IncomeStatement:
		repairIncomeStatement(row.Items)
	case models.BalanceSheet:
		repairBalanceSheet(row.Items)
	case models.CashFlowStatement:
		repairCashFlowStatement(row.Items)
	}
	return row
}

func repairIncomeStatement(items map[string]*float64) {
	if items["pretax_income"] == nil {
		operatingIncome := items["operating_income"]
		nonOperating := items["non_operating_income_expense"]
		if operatingIncome != nil && nonOperating != nil {
			items["pretax_income"] = ptr(*operatingIncome + *nonOperating)
		}
	}

	if items["net_income"] == nil {
		pretaxIncome := items["pretax_income"]
		taxProvision := items["tax_provision"]
		if pretaxIncome != nil && taxProvision != nil {
			items["net_income"] = ptr(*pretaxIncome - *taxProvision)
		}
	}
}

func repairBalanceSheet(items map[string]*float64) {
	if items["current_assets"] == nil {
		nonCurrentAssets := items["non_current_assets"]
		totalAssets := items["total_assets"]
		if nonCurrentAssets != nil && totalAssets != nil {
			items["current_assets"] = ptr(*totalAssets - *nonCurrentAssets)
		}
	}

	if items["non_current_assets"] == nil {
		currentAssets := items["current_assets"]
		totalAssets := items["total_assets"]
		if currentAssets != nil && totalAssets != nil {
			items["non_current_assets"] = ptr(*totalAssets - *currentAssets)
		}
	}

	if items["total_assets"] == nil {
		currentAssets := items["current_assets"]
		nonCurrentAssets := items["non_current_assets"]
		if currentAssets != nil && nonCurrentAssets != nil {
			items["total_assets"] = ptr(*currentAssets + *nonCurrentAssets)
		}
	}

	if items["current_liabilities"] == nil {
		nonCurrentLiabilities := items["non_current_liabilities"]
		totalLiabilities := items["total_liabilities"]
		if nonCurrentLiabilities != nil && totalLiabilities != nil {
			items["current_liabilities"] = ptr(*totalLiabilities - *nonCurrentLiabilities)
		}
	}

	if items["non_current_liabilities"] == nil {
		currentLiabilities := items["current_liabilities"]
		totalLiabilities := items["total_liabilities"]
		if currentLiabilities != nil && totalLiabilities != nil {
			items["non_current_liabilities"] = ptr(*totalLiabilities - *currentLiabilities)
		}
	}

	if items["total_liabilities"] == nil {
		currentLiabilities := items["current_liabilities"]
		nonCurrentLiabilities := items["non_current_liabilities"]
		if currentLiabilities != nil && nonCurrentLiabilities != nil {
			items["total_liabilities"] = ptr(*currentLiabilities + *nonCurrentLiabilities)
		}
	}
}

func repairCashFlowStatement(items map[string]*float64) {
	if items["change_in_cash"] == nil {
		beginning := items["beginning_cash_position"]
		end := items["end_cash_position"]
		if beginning != nil && end != nil {
			items["change_in_cash"] = ptr(*end - *beginning)
		}
	}

	if items["beginning_cash_position"] == nil {
		change := items["change_in_cash"]
		end := items["end_cash_position"]
		if change != nil && end != nil {
			items["beginning_cash_position"] = ptr(*end - *change)
		}
	}

	if items["end_cash_position"] == nil {
		change := items["change_in_cash"]
		beginning := items["beginning_cash_position"]
		if change != nil && beginning != nil {
			items["end_cash_position"] = ptr(*beginning + *change)
		}
	}
}

func ptr(v float64) *float64 { return &v }
