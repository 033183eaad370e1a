package commands

import (
	"context"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/shared"
)

type CartCommands interface {
	AddItem(ctx context.Context, s shared.Session, productID string, qty int) (cart.LineItem, error)
	SetQuantity(ctx context.Context, s shared.Session, productID string, qty int) (cart.LineItem, error)
	RemoveItem(ctx context.Context, s shared.Session, productID string) error
	SetSelected(ctx context.Context, s shared.Session, productID string, selected bool) error
	SelectAll(ctx context.Context, s shared.Session, selected bool) error
	Clear(ctx context.Context, s shared.Session) error
	Flush(ctx context.Context, s shared.Session) error
	Refresh(ctx context.Context, s shared.Session) error
}

type cartCommandsImpl struct {
	registry *cartsync.Registry
}

func NewCartCommands(registry *cartsync.Registry) CartCommands {
	return &cartCommandsImpl{registry: registry}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, s shared.Session, productID string, qty int) (cart.LineItem, error) {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return cart.LineItem{}, err
	}
	return e.AddItem(ctx, productID, qty)
}

func (c *cartCommandsImpl) SetQuantity(ctx context.Context, s shared.Session, productID string, qty int) (cart.LineItem, error) {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return cart.LineItem{}, err
	}
	return e.SetQuantity(ctx, productID, qty)
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, s shared.Session, productID string) error {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return err
	}
	return e.RemoveItem(ctx, productID)
}

func (c *cartCommandsImpl) SetSelected(ctx context.Context, s shared.Session, productID string, selected bool) error {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return err
	}
	if selected {
		return e.Select(ctx, productID)
	}
	return e.Deselect(ctx, productID)
}

func (c *cartCommandsImpl) SelectAll(ctx context.Context, s shared.Session, selected bool) error {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return err
	}
	return e.SelectAll(ctx, selected)
}

func (c *cartCommandsImpl) Clear(ctx context.Context, s shared.Session) error {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return err
	}
	return e.Clear(ctx)
}

// Flush serves the page-hide beacon. A session without a live engine has nothing pending.
func (c *cartCommandsImpl) Flush(ctx context.Context, s shared.Session) error {
	e, ok := c.registry.Peek(s.ID)
	if !ok {
		return nil
	}
	return e.Flush(ctx)
}

func (c *cartCommandsImpl) Refresh(ctx context.Context, s shared.Session) error {
	if !s.IsAuthenticated() {
		return errs.ErrNotAuthenticated
	}
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return err
	}
	return e.RefreshFromServer(ctx)
}
