package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"finquery/models"
)

// Criterion is one structured search condition over financial rows.
// The first criterion carries no connector; every later one names the
// connector joining it to the expression accumulated so far.
type Criterion struct {
	Feature         string `json:"feature" binding:"required"`
	Operator        string `json:"operator" binding:"required"`
	Value           string `json:"value" binding:"required"`
	LogicalOperator string `json:"logicalOperator"`
}

// searchResultLimit bounds how many financial rows a search returns.
const searchResultLimit = 50

// featureColumns is the closed set of searchable features. Anything
// not listed here never reaches the query text.
var featureColumns = map[string]string{
	"cik":                 "cik",
	"year":                "year",
	"month":               "month",
	"accounts_payable":    "accounts_payable_current",
	"assets":              "assets",
	"liabilities":         "liabilities",
	"cash":                "cash_and_equivalents",
	"accounts_receivable": "accounts_receivable_current",
	"inventory":           "inventory_net",
	"long_term_debt":      "long_term_debt",
}

// operators is the closed set of permitted comparison operators.
var operators = map[string]string{
	"=":  "=",
	"==": "=",
	"!=": "<>",
	">":  ">",
	"<":  "<",
	">=": ">=",
	"<=": "<=",
}

// CriteriaError reports a criterion the compiler rejected. It maps to
// a validation failure, not a server error.
type CriteriaError struct {
	Position int
	Reason   string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("criterion %d: %s", e.Position, e.Reason)
}

// compileCriteria folds the criteria left to right into a single WHERE
// expression with one bound parameter per criterion. Values are never
// spliced into the query text.
func compileCriteria(criteria []Criterion) (string, []any, error) {
	if len(criteria) == 0 {
		return "", nil, &CriteriaError{Position: 0, Reason: "no criteria given"}
	}

	var expr strings.Builder
	args := make([]any, 0, len(criteria))

	for i, criterion := range criteria {
		column, ok := featureColumns[criterion.Feature]
		if !ok {
			return "", nil, &CriteriaError{Position: i, Reason: fmt.Sprintf("unknown feature %q", criterion.Feature)}
		}

		operator, ok := operators[criterion.Operator]
		if !ok {
			return "", nil, &CriteriaError{Position: i, Reason: fmt.Sprintf("unknown operator %q", criterion.Operator)}
		}

		value, err := strconv.ParseFloat(criterion.Value, 64)
		if err != nil {
			return "", nil, &CriteriaError{Position: i, Reason: fmt.Sprintf("value %q is not numeric", criterion.Value)}
		}

		if i > 0 {
			connector := strings.ToUpper(strings.TrimSpace(criterion.LogicalOperator))
			if connector != "AND" && connector != "OR" {
				return "", nil, &CriteriaError{Position: i, Reason: fmt.Sprintf("connector must be AND or OR, got %q", criterion.LogicalOperator)}
			}

			expr.WriteString(" " + connector + " ")
		}

		fmt.Fprintf(&expr, "%s %s ?", column, operator)
		args = append(args, value)
	}

	return expr.String(), args, nil
}

// Search compiles the criteria and runs the resulting filter over the
// financial table. No matches is a successful empty result.
func (e *Engine) Search(criteria []Criterion) ([]models.Financial, error) {
	expr, args, err := compileCriteria(criteria)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Financial, 0)
	err = e.DB.Where(expr, args...).Limit(searchResultLimit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
