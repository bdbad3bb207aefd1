package validator_test

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/sift/pkg/validator"
)

// sleepy sleeps for |n| milliseconds and rejects negative n.
var sleepy = validator.Custom("sleepy", nil).Async(func(ctx context.Context, data any, path validator.Path) (any, error) {
	n, ok := data.(int)
	if !ok {
		return nil, validator.NewFailure(validator.CodeInvalidType, path, "expected int")
	}
	if n < 0 {
		time.Sleep(time.Duration(-n) * time.Millisecond)
		return nil, validator.NewFailure(validator.CodeCustom, path, fmt.Sprintf("rejected %d", n))
	}
	time.Sleep(time.Duration(n) * time.Millisecond)
	return n, nil
})
