package errors

import "fmt"

// ErrNotFound indicates a resource doesn't exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates authentication failure
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition indicates an invalid sync status transition
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}

// ErrNoSellableVariant indicates a Printful sync product has no variants to sell
type ErrNoSellableVariant struct {
	ProductID string
}

func (e *ErrNoSellableVariant) Error() string {
	return fmt.Sprintf("no sellable variant for Printful product %s", e.ProductID)
}

// ErrNoFulfillableItems indicates an order has no items matching the provider's
// fulfillment type
type ErrNoFulfillableItems struct {
	Provider string
}

func (e *ErrNoFulfillableItems) Error() string {
	return fmt.Sprintf("no %s POD products found in order", e.Provider)
}

// ErrMissingShippingAddress indicates an order without a shipping address
type ErrMissingShippingAddress struct {
	OrderID string
}

func (e *ErrMissingShippingAddress) Error() string {
	return fmt.Sprintf("shipping address is required for Printful orders (order %s)", e.OrderID)
}

// ErrNoValidItems indicates every fulfillable item was skipped during
// translation, leaving nothing to send to the provider
type ErrNoValidItems struct {
	OrderID string
}

func (e *ErrNoValidItems) Error() string {
	return fmt.Sprintf("no valid Printful items to create order (order %s)", e.OrderID)
}

// ErrAlreadyImported indicates a provider product that is already linked to an
// internal product
type ErrAlreadyImported struct {
	ProviderProductID string
}

func (e *ErrAlreadyImported) Error() string {
	return fmt.Sprintf("product %s already imported", e.ProviderProductID)
}

// ErrInvalidSyncAction indicates a sync action the engine does not support
type ErrInvalidSyncAction struct {
	Action string
}

func (e *ErrInvalidSyncAction) Error() string {
	return fmt.Sprintf("unknown sync action: %s", e.Action)
}

// ErrPriceUnavailable indicates the pricing policy refused to produce a price
type ErrPriceUnavailable struct {
	ProviderProductID string
}

func (e *ErrPriceUnavailable) Error() string {
	return fmt.Sprintf("no price available for product %s", e.ProviderProductID)
}
