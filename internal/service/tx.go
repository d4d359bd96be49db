package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shenikar/tourist_safety/internal/models"
)

type commitHooksKey struct{}

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

// afterCommit откладывает fn до фиксации внешней транзакции. Вне транзакции fn выполняется сразу.
func afterCommit(ctx context.Context, fn func()) {
	h, ok := ctx.Value(commitHooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

type txRunner struct {
	tx Transactor
}

// run выполняет fn в транзакции; отложенные через afterCommit действия выполняются только после
// успешной фиксации самой внешней транзакции.
func (r txRunner) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(commitHooksKey{}).(*commitHooks); nested {
		return r.tx.WithinTx(ctx, fn)
	}

	hooks := &commitHooks{}
	ctx = context.WithValue(ctx, commitHooksKey{}, hooks)
	if err := r.tx.WithinTx(ctx, fn); err != nil {
		return err
	}

	hooks.mu.Lock()
	fns := hooks.fns
	hooks.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return nil
}

// storeError переводит ошибку хранилища в ошибку сервиса. Факты предметной области
// (не найдено, конфликт, недопустимый переход) пробрасываются как есть, остальное - ErrStoreUnavailable.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrDuplicateSuppressed):
		return fmt.Errorf("service: %s: %w", op, err)
	}
	return fmt.Errorf("service: %s: %w: %w", op, models.ErrStoreUnavailable, err)
}
