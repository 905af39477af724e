package handlers

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/config"
	"github.com/BruksfildServices01/homely-bites/internal/domain/courier"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	"github.com/BruksfildServices01/homely-bites/internal/models"
	"github.com/BruksfildServices01/homely-bites/internal/validators"
)

var (
	errEmailExists        = httperr.Conflict("email_exists", "Email already exists")
	errPhoneRegistered    = httperr.Conflict("phone_registered", "Phone number already registered")
	errInvalidCredentials = httperr.Unauthorized("invalid_credentials", "Invalid email or password")
	errInvalidEmail       = httperr.Unauthorized("invalid_email", "Invalid Email")
	errInvalidPassword    = httperr.Unauthorized("invalid_password", "Invalid Password")
	errNotApproved        = httperr.Forbidden("chef_not_approved", "Account not approved by admin")
	errCourierCredentials = httperr.Unauthorized("invalid_credentials", "Invalid phone number or password")
	errPasswordNotSet     = httperr.Forbidden("password_not_set", "Please set a password first. Contact admin.")
	errBadPhone           = httperr.Validation("invalid_phone", "Phone number must be 10 digits")
	errBadEmail           = httperr.Validation("invalid_email", "Invalid email address")
	errShortPassword      = httperr.Validation("password_too_short", "Password must be at least 6 characters")
)

const minPasswordLength = 6

type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.Issuer
	hasher auth.Hasher
	audit  *audit.Dispatcher
	config *config.Config
}

func NewAuthHandler(
	db *gorm.DB,
	issuer *auth.Issuer,
	hasher auth.Hasher,
	audit *audit.Dispatcher,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		db:     db,
		issuer: issuer,
		hasher: hasher,
		audit:  audit,
		config: cfg,
	}
}

// --------- Requests ---------

type CustomerSignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone_number" binding:"omitempty,len=10,number"`
}

type ChefSignupRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Phone        string `json:"phone_number" binding:"omitempty,len=10,number"`
	Description  string `json:"description"`
}

type CourierSignupRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Phone         string `json:"phone_number" binding:"required,len=10,number"`
	Password      string `json:"password" binding:"required"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
}

type EmailLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PhoneLoginRequest struct {
	Phone    string `json:"phone_number" binding:"required,len=10,number"`
	Password string `json:"password" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AuthHandler) CustomerSignup(c *gin.Context) {
	var req CustomerSignupRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if len(req.Password) < minPasswordLength {
		httperr.Write(c, errShortPassword)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	customer := models.Customer{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		if httperr.IsDuplicateKey(err) {
			httperr.Write(c, errEmailExists)
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.respondWithToken(c, true, auth.Principal{Role: auth.RoleCustomer, SubjectID: customer.ID}, customerView(customer))
}

func (h *AuthHandler) CustomerSignin(c *gin.Context) {
	var req EmailLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var customer models.Customer
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Write(c, errInvalidCredentials)
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.hasher.Compare(customer.PasswordHash, req.Password) {
		httperr.Write(c, errInvalidCredentials)
		return
	}

	h.respondWithToken(c, false, auth.Principal{Role: auth.RoleCustomer, SubjectID: customer.ID}, customerView(customer))
}

// ======================================================
// HOME CHEF
// ======================================================

// ChefSignup creates an inactive chef. No token is issued until an admin
// approves the account.
func (h *AuthHandler) ChefSignup(c *gin.Context) {
	var req ChefSignupRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if len(req.Password) < minPasswordLength {
		httperr.Write(c, errShortPassword)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	chef := models.HomeChef{
		BusinessName: strings.TrimSpace(req.BusinessName),
		ContactName:  strings.TrimSpace(req.ContactName),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Description:  strings.TrimSpace(req.Description),
		IsActive:     false,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&chef).Error; err != nil {
		if httperr.IsDuplicateKey(err) {
			httperr.Write(c, errEmailExists)
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorRole: string(auth.RoleChef),
		ActorID:   audit.ID(chef.ID),
		Action:    "chef_signed_up",
		Entity:    "home_chef",
		EntityID:  audit.ID(chef.ID),
	})

	httpresp.Created(c, chefView(chef))
}

// ChefSignin checks the password before the approval flag so that an
// unapproved chef only learns about approval with valid credentials.
func (h *AuthHandler) ChefSignin(c *gin.Context) {
	var req EmailLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var chef models.HomeChef
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&chef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Write(c, errInvalidEmail)
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.hasher.Compare(chef.PasswordHash, req.Password) {
		httperr.Write(c, errInvalidPassword)
		return
	}
	if !chef.IsActive {
		httperr.Write(c, errNotApproved)
		return
	}

	h.respondWithToken(c, false, auth.Principal{Role: auth.RoleChef, SubjectID: chef.ID}, chefView(chef))
}

// ======================================================
// DELIVERY PERSONNEL
// ======================================================

func (h *AuthHandler) CourierSignup(c *gin.Context) {
	var req CourierSignupRequest
	if !bindJSON(c, &req) {
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if len(req.Password) < minPasswordLength {
		httperr.Write(c, errShortPassword)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	d := models.DeliveryPerson{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Phone:         phone,
		VehicleType:   strings.TrimSpace(req.VehicleType),
		VehicleNumber: strings.TrimSpace(req.VehicleNumber),
		PasswordHash:  &hash,
		Status:        string(courier.InitialStatus()),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&d).Error; err != nil {
		if httperr.IsDuplicateKey(err) {
			httperr.Write(c, errPhoneRegistered)
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.respondWithToken(c, true, auth.Principal{Role: auth.RoleCourier, SubjectID: d.ID}, courierView(d))
}

func (h *AuthHandler) CourierSignin(c *gin.Context) {
	var req PhoneLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	phone := strings.TrimSpace(req.Phone)

	var d models.DeliveryPerson
	err := h.db.WithContext(c.Request.Context()).
		Where("phone_number = ?", phone).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Write(c, errCourierCredentials)
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if d.PasswordHash == nil || *d.PasswordHash == "" {
		httperr.Write(c, errPasswordNotSet)
		return
	}
	if !h.hasher.Compare(*d.PasswordHash, req.Password) {
		httperr.Write(c, errCourierCredentials)
		return
	}

	h.respondWithToken(c, false, auth.Principal{Role: auth.RoleCourier, SubjectID: d.ID}, courierView(d))
}

// ======================================================
// ADMIN
// ======================================================

// AdminLogin accepts the configured credentials first, then admin rows.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req EmailLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)

	if h.matchesConfiguredAdmin(email, password) {
		h.respondWithToken(c, false, auth.Principal{Role: auth.RoleAdmin}, gin.H{
			"email": email,
			"role":  "Admin",
		})
		return
	}

	var admin models.Admin
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Write(c, errInvalidCredentials)
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.hasher.Compare(admin.PasswordHash, password) {
		httperr.Write(c, errInvalidCredentials)
		return
	}

	h.respondWithToken(c, false, auth.Principal{Role: auth.RoleAdmin, SubjectID: admin.ID}, gin.H{
		"admin_id": admin.ID,
		"name":     admin.Name,
		"email":    admin.Email,
		"role":     "Admin",
	})
}

func (h *AuthHandler) matchesConfiguredAdmin(email, password string) bool {
	if h.config.AdminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(validators.NormalizeEmail(h.config.AdminEmail))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.config.AdminPassword)) == 1
	return emailOK && passOK
}

// --------- JWT ---------

func (h *AuthHandler) respondWithToken(c *gin.Context, created bool, p auth.Principal, data gin.H) {
	token, err := h.issuer.Issue(p)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	data["token"] = token

	if created {
		httpresp.Created(c, data)
		return
	}
	httpresp.OK(c, data)
}
