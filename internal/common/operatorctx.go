package common

import "context"

// Operator identifies the console operator performing a request. Identity is
// supplied by the external auth collaborator; the financial core only carries
// it for stamping and scoping.
type Operator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ctxKey string

const operatorKey ctxKey = "operator"

// WithOperator stores the operator identity on the provided context.
func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// OperatorFromContext extracts the operator identity from the context.
func OperatorFromContext(ctx context.Context) (Operator, bool) {
	v := ctx.Value(operatorKey)
	if v == nil {
		return Operator{}, false
	}
	op, ok := v.(Operator)
	if !ok || op.ID == "" {
		return Operator{}, false
	}
	return op, true
}
