package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/models"
)

const Pincode = "400001"

// Fixture is a customer who can order from one active chef.
type Fixture struct {
	Customer models.Customer
	Chef     models.HomeChef
	Address  models.Address
	Area     models.ServiceArea
	Dal      models.MenuItem
	Roti     models.MenuItem
	Kheer    models.MenuItem // unavailable
}

func Seed(t testing.TB, db *gorm.DB) Fixture {
	t.Helper()

	var f Fixture
	f.Customer = Customer(t, db, "asha@example.com")
	f.Chef = Chef(t, db, "Asha's Kitchen", "kitchen@example.com", true)

	f.Address = models.Address{Label: "Home", Street: "MG Road", City: "Mumbai", Pincode: Pincode}
	f.Address.SetOwner(models.CustomerOwner(f.Customer.ID))
	require.NoError(t, db.Create(&f.Address).Error)

	f.Area = models.ServiceArea{ChefID: f.Chef.ID, Pincode: Pincode, DeliveryFee: 30}
	require.NoError(t, db.Create(&f.Area).Error)

	f.Dal = MenuItem(t, db, f.Chef.ID, "Dal Tadka", 120, true)
	f.Roti = MenuItem(t, db, f.Chef.ID, "Tandoori Roti", 20, true)
	f.Kheer = MenuItem(t, db, f.Chef.ID, "Kheer", 80, false)

	return f
}

func Customer(t testing.TB, db *gorm.DB, email string) models.Customer {
	t.Helper()
	c := models.Customer{FirstName: "Asha", LastName: "Rao", Email: email, PasswordHash: "x", Phone: "9876543210"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func Chef(t testing.TB, db *gorm.DB, name, email string, active bool) models.HomeChef {
	t.Helper()
	c := models.HomeChef{BusinessName: name, Email: email, PasswordHash: "x", IsActive: active}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func MenuItem(t testing.TB, db *gorm.DB, chefID uint, name string, price float64, available bool) models.MenuItem {
	t.Helper()
	m := models.MenuItem{ChefID: chefID, Name: name, BasePrice: price, IsAvailable: available}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func Courier(t testing.TB, db *gorm.DB, phone string) models.DeliveryPerson {
	t.Helper()
	d := models.DeliveryPerson{FirstName: "Ravi", Phone: phone, Status: "Available"}
	require.NoError(t, db.Create(&d).Error)
	return d
}

// Order inserts an order for the fixture directly in the given status.
func Order(t testing.TB, db *gorm.DB, f Fixture, status string, courierID *uint) models.Order {
	t.Helper()
	o := models.Order{
		CustomerID:        f.Customer.ID,
		ChefID:            f.Chef.ID,
		DeliveryAddressID: f.Address.ID,
		DeliveryPersonID:  courierID,
		Subtotal:          120,
		DeliveryFee:       f.Area.DeliveryFee,
		GrandTotal:        120 + f.Area.DeliveryFee,
		Status:            status,
		OrderTime:         time.Now().UTC(),
		Items: []models.OrderItem{
			{ItemID: f.Dal.ID, Name: f.Dal.Name, Quantity: 1, UnitPriceAtPurchase: f.Dal.BasePrice},
		},
	}
	require.NoError(t, db.Create(&o).Error, fmt.Sprintf("seed order %s", status))
	return o
}
