package order

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/dbtest"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

type harness struct {
	db     *gorm.DB
	f      dbtest.Fixture
	events *events.Recorder

	place   *PlaceOrder
	cancel  *CancelOrder
	advance *AdvanceOrder
	claim   *ClaimOrder
	deliver *UpdateDeliveryStatus
	list    *ListOrders
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := dbtest.New(t)
	repo := repository.NewOrderGormRepository(db)
	rec := &events.Recorder{}

	return &harness{
		db:      db,
		f:       dbtest.Seed(t, db),
		events:  rec,
		place:   NewPlaceOrder(repo, nil, rec),
		cancel:  NewCancelOrder(repo, nil, rec),
		advance: NewAdvanceOrder(repo, nil, rec),
		claim:   NewClaimOrder(repo, nil, rec),
		deliver: NewUpdateDeliveryStatus(repo, nil, rec),
		list:    NewListOrders(repo),
	}
}

func (h *harness) input(lines ...CartLine) PlaceOrderInput {
	return PlaceOrderInput{
		CustomerID:        h.f.Customer.ID,
		ChefID:            h.f.Chef.ID,
		DeliveryAddressID: h.f.Address.ID,
		Lines:             lines,
	}
}

func (h *harness) status(t *testing.T, orderID uint) string {
	t.Helper()
	var o models.Order
	require.NoError(t, h.db.First(&o, orderID).Error)
	return o.Status
}

// ======================================================
// PLACE
// ======================================================

func TestPlaceOrder_PricesFromMenuAndMergesLines(t *testing.T) {
	h := newHarness(t)

	o, err := h.place.Execute(context.Background(), h.input(
		CartLine{ItemID: h.f.Dal.ID, Quantity: 1},
		CartLine{ItemID: h.f.Roti.ID, Quantity: 2},
		CartLine{ItemID: h.f.Dal.ID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, "Placed", o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.InDelta(t, 280, o.Subtotal, 0.001)
	assert.InDelta(t, 30, o.DeliveryFee, 0.001)
	assert.InDelta(t, 310, o.GrandTotal, 0.001)
	assert.Equal(t, []string{events.OrderPlaced}, h.events.Types())
}

func TestPlaceOrder_HistoricalTotalSurvivesPriceEdit(t *testing.T) {
	h := newHarness(t)

	o, err := h.place.Execute(context.Background(), h.input(CartLine{ItemID: h.f.Dal.ID, Quantity: 3}))
	require.NoError(t, err)

	require.NoError(t, h.db.Model(&models.MenuItem{}).Where("id = ?", h.f.Dal.ID).Update("base_price", 999).Error)

	var sum float64
	require.NoError(t, h.db.Model(&models.OrderItem{}).
		Where("order_id = ?", o.ID).
		Select("SUM(quantity * unit_price_at_purchase)").
		Scan(&sum).Error)
	assert.InDelta(t, 360, sum, 0.001)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	otherChef := dbtest.Chef(t, h.db, "Other", "other-chef@example.com", true)
	foreignItem := dbtest.MenuItem(t, h.db, otherChef.ID, "Biryani", 200, true)
	inactive := dbtest.Chef(t, h.db, "Sleepy", "sleepy@example.com", false)

	farAway := models.Address{Street: "Brigade Rd", City: "Bengaluru", Pincode: "560001"}
	farAway.SetOwner(models.CustomerOwner(h.f.Customer.ID))
	require.NoError(t, h.db.Create(&farAway).Error)

	stranger := dbtest.Customer(t, h.db, "stranger@example.com")

	dal := CartLine{ItemID: h.f.Dal.ID, Quantity: 1}

	cases := []struct {
		name string
		in   PlaceOrderInput
		want error
	}{
		{"empty cart", h.input(), domain.ErrEmptyCart},
		{"zero quantity", h.input(CartLine{ItemID: h.f.Dal.ID}), domain.ErrInvalidQuantity},
		{"negative quantity", h.input(CartLine{ItemID: h.f.Dal.ID, Quantity: -2}), domain.ErrInvalidQuantity},
		{"quantity over the cap", h.input(CartLine{ItemID: h.f.Dal.ID, Quantity: domain.MaxLineQuantity + 1}), domain.ErrInvalidQuantity},
		{"merged lines over the cap", h.input(
			CartLine{ItemID: h.f.Dal.ID, Quantity: domain.MaxLineQuantity},
			CartLine{ItemID: h.f.Dal.ID, Quantity: 1},
		), domain.ErrInvalidQuantity},
		{"huge lines that would wrap", h.input(
			CartLine{ItemID: h.f.Dal.ID, Quantity: math.MaxInt},
			CartLine{ItemID: h.f.Dal.ID, Quantity: math.MaxInt},
		), domain.ErrInvalidQuantity},
		{"unavailable item", h.input(CartLine{ItemID: h.f.Kheer.ID, Quantity: 1}), domain.ErrItemUnavailable},
		{"item of another chef", h.input(CartLine{ItemID: foreignItem.ID, Quantity: 1}), domain.ErrItemUnavailable},
		{"inactive chef", func() PlaceOrderInput { in := h.input(dal); in.ChefID = inactive.ID; return in }(), domain.ErrChefUnavailable},
		{"outside service area", func() PlaceOrderInput { in := h.input(dal); in.DeliveryAddressID = farAway.ID; return in }(), domain.ErrOutsideServiceArea},
		{"address of someone else", func() PlaceOrderInput { in := h.input(dal); in.CustomerID = stranger.ID; return in }(), domain.ErrAddressNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.place.Execute(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	var n int64
	require.NoError(t, h.db.Model(&models.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	placed := dbtest.Order(t, h.db, h.f, "Placed", nil)
	o, err := h.cancel.Execute(ctx, h.f.Customer.ID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", o.Status)
	assert.NotNil(t, o.CancelledAt)

	_, err = h.cancel.Execute(ctx, h.f.Customer.ID, placed.ID)
	assert.ErrorIs(t, err, domain.ErrNotCancellable)

	delivered := dbtest.Order(t, h.db, h.f, "Delivered", nil)
	_, err = h.cancel.Execute(ctx, h.f.Customer.ID, delivered.ID)
	assert.ErrorIs(t, err, domain.ErrNotCancellable)
	assert.Equal(t, "Delivered", h.status(t, delivered.ID))

	mine := dbtest.Order(t, h.db, h.f, "Placed", nil)
	_, err = h.cancel.Execute(ctx, h.f.Customer.ID+100, mine.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Equal(t, "Placed", h.status(t, mine.ID))
}

// ======================================================
// CHEF
// ======================================================

func TestAdvanceOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	chefID := h.f.Chef.ID

	o := dbtest.Order(t, h.db, h.f, "Placed", nil)

	_, err := h.advance.Execute(ctx, chefID, o.ID, "Accepted")
	require.NoError(t, err)

	_, err = h.advance.Execute(ctx, chefID, o.ID, "preparing")
	require.NoError(t, err)
	assert.Equal(t, "Preparing", h.status(t, o.ID))

	_, err = h.advance.Execute(ctx, chefID, o.ID, "Accepted")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.advance.Execute(ctx, chefID, o.ID, "Delivered")
	assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)

	_, err = h.advance.Execute(ctx, chefID, o.ID, "bogus")
	assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)

	_, err = h.advance.Execute(ctx, chefID+1, o.ID, "Ready")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = h.advance.Execute(ctx, chefID, o.ID, "Ready")
	require.NoError(t, err)
	assert.Equal(t, "Ready", h.status(t, o.ID))
}

// ======================================================
// COURIER
// ======================================================

func TestClaimOrder_SecondAttemptFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c1 := dbtest.Courier(t, h.db, "9000000001")
	c2 := dbtest.Courier(t, h.db, "9000000002")

	ready := dbtest.Order(t, h.db, h.f, "Ready", nil)

	o, err := h.claim.Execute(ctx, c1.ID, ready.ID)
	require.NoError(t, err)
	assert.Equal(t, "On Delivery", o.Status)
	assert.Equal(t, c1.ID, *o.DeliveryPersonID)

	_, err = h.claim.Execute(ctx, c1.ID, ready.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	_, err = h.claim.Execute(ctx, c2.ID, ready.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	cooking := dbtest.Order(t, h.db, h.f, "Preparing", nil)
	_, err = h.claim.Execute(ctx, c2.ID, cooking.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	_, err = h.claim.Execute(ctx, c2.ID, 4242)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestClaimOrder_DeletedCourier(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	gone := dbtest.Courier(t, h.db, "9000000001")
	require.NoError(t, h.db.Delete(&models.DeliveryPerson{}, gone.ID).Error)

	ready := dbtest.Order(t, h.db, h.f, "Ready", nil)

	_, err := h.claim.Execute(ctx, gone.ID, ready.ID)
	assert.ErrorIs(t, err, domain.ErrCourierNotFound)
	assert.Equal(t, "Ready", h.status(t, ready.ID))
	assert.Empty(t, h.events.Types())
}

func TestUpdateDeliveryStatus(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c1 := dbtest.Courier(t, h.db, "9000000001")
	c2 := dbtest.Courier(t, h.db, "9000000002")

	ready := dbtest.Order(t, h.db, h.f, "Ready", nil)
	_, err := h.claim.Execute(ctx, c1.ID, ready.ID)
	require.NoError(t, err)

	_, err = h.deliver.Execute(ctx, c2.ID, ready.ID, "Delivered")
	assert.ErrorIs(t, err, domain.ErrNotAssignedToYou)

	_, err = h.deliver.Execute(ctx, c1.ID, ready.ID, "Cancelled")
	assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)

	o, err := h.deliver.Execute(ctx, c1.ID, ready.ID, "On Delivery")
	require.NoError(t, err)
	assert.Equal(t, "On Delivery", o.Status)

	o, err = h.deliver.Execute(ctx, c1.ID, ready.ID, "Delivered")
	require.NoError(t, err)
	assert.NotNil(t, o.DeliveredAt)

	_, err = h.deliver.Execute(ctx, c1.ID, ready.ID, "On Delivery")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Delivered", h.status(t, ready.ID))

	assert.Equal(t, []string{events.OrderClaimed, events.OrderStatusChanged}, h.events.Types())
}

func TestListOrders_ClampsLimit(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		dbtest.Order(t, h.db, h.f, "Placed", nil)
	}

	rows, total, err := h.list.Execute(context.Background(), domain.ListFilter{CustomerID: &h.f.Customer.ID, Limit: 10_000, Offset: -5})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 3)
}
