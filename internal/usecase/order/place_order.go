package order

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CartLine struct {
	ItemID   uint
	Quantity int
}

type PlaceOrderInput struct {
	CustomerID          uint
	ChefID              uint
	DeliveryAddressID   uint
	Lines               []CartLine
	SpecialInstructions string
}

// ======================================================
// USE CASE
// ======================================================

type PlaceOrder struct {
	deps
}

func NewPlaceOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *PlaceOrder {
	return &PlaceOrder{deps: newDeps(repo, audit, pub)}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PlaceOrder) Execute(
	ctx context.Context,
	in PlaceOrderInput,
) (*models.Order, error) {

	// --------------------------------------------------
	// 1. Cart
	// --------------------------------------------------
	lines, err := mergeLines(in.Lines)
	if err != nil {
		return nil, err
	}
	if in.ChefID == 0 || in.DeliveryAddressID == 0 {
		return nil, domain.ErrEmptyCart
	}

	// --------------------------------------------------
	// 2. Chef, address and delivery fee
	// --------------------------------------------------
	chef, err := uc.repo.GetActiveChef(ctx, in.ChefID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrChefUnavailable)
	}

	addr, err := uc.repo.GetOwnedAddress(ctx, models.CustomerOwner(in.CustomerID), in.DeliveryAddressID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrAddressNotFound)
	}

	area, err := uc.repo.GetServiceArea(ctx, chef.ID, addr.Pincode)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrOutsideServiceArea)
	}

	// --------------------------------------------------
	// 3. Prices come from the menu, never from the client
	// --------------------------------------------------
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}

	menu, err := uc.repo.ListChefItems(ctx, chef.ID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.MenuItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	items := make([]models.OrderItem, 0, len(lines))
	subtotal := 0.0
	for _, l := range lines {
		m, ok := byID[l.ItemID]
		if !ok || !m.IsAvailable {
			return nil, domain.ErrItemUnavailable
		}
		item := models.OrderItem{
			ItemID:              m.ID,
			Name:                m.Name,
			Quantity:            l.Quantity,
			UnitPriceAtPurchase: m.BasePrice,
		}
		subtotal += item.LineTotal()
		items = append(items, item)
	}

	// --------------------------------------------------
	// 4. Header + lines in one transaction
	// --------------------------------------------------
	now := uc.now()
	o := &models.Order{
		CustomerID:          in.CustomerID,
		ChefID:              chef.ID,
		DeliveryAddressID:   addr.ID,
		Subtotal:            roundMoney(subtotal),
		DeliveryFee:         roundMoney(area.DeliveryFee),
		GrandTotal:          roundMoney(subtotal + area.DeliveryFee),
		Status:              string(domain.InitialStatus()),
		SpecialInstructions: in.SpecialInstructions,
		OrderTime:           now,
		Items:               items,
	}

	actor := domain.Actor{Role: domain.ActorCustomer, ID: in.CustomerID}
	if err := uc.repo.CreateOrder(ctx, o, actor); err != nil {
		return nil, err
	}

	uc.record(ctx, events.OrderPlaced, o, actor, "", now)

	return o, nil
}

// mergeLines rejects an empty cart or bad quantities and folds repeated
// items into one line, keeping first-seen order.
func mergeLines(in []CartLine) ([]CartLine, error) {
	if len(in) == 0 {
		return nil, domain.ErrEmptyCart
	}

	out := make([]CartLine, 0, len(in))
	pos := make(map[uint]int, len(in))
	for _, l := range in {
		if l.ItemID == 0 {
			return nil, domain.ErrEmptyCart
		}
		if l.Quantity <= 0 || l.Quantity > domain.MaxLineQuantity {
			return nil, domain.ErrInvalidQuantity
		}
		if i, ok := pos[l.ItemID]; ok {
			if out[i].Quantity+l.Quantity > domain.MaxLineQuantity {
				return nil, domain.ErrInvalidQuantity
			}
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.ItemID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
