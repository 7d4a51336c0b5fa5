package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rentora/rentora-api/internal/domain"
)

// ---------- Mocks ----------

type mockMailer struct {
	lastTo   string
	lastName string
	lastCode string
	sendErr  error
	sent     int
}

func (m *mockMailer) SendVerificationCode(toEmail, toName, code string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.lastTo = toEmail
	m.lastName = toName
	m.lastCode = code
	m.sent++
	return nil
}

type mockUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) add(u *domain.User) *domain.User {
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepo) Create(_ context.Context, req *domain.RegisterRequest, passwordHash, codeHash string) (*domain.User, error) {
	return m.add(&domain.User{
		Role:             req.Role,
		Email:            req.Email,
		PasswordHash:     passwordHash,
		Name:             req.Name,
		Phone:            req.Phone,
		Document:         req.Document,
		Address:          req.Address,
		Number:           req.Number,
		Complement:       req.Complement,
		ZipCode:          req.ZipCode,
		IsVerified:       false,
		VerificationCode: &codeHash,
	}), nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int64, req *domain.UpdateProfileRequest, codeHash string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	apply := func(p *string, dst *string) {
		if p != nil {
			*dst = *p
		}
	}
	apply(req.Name, &u.Name)
	apply(req.Email, &u.Email)
	apply(req.Phone, &u.Phone)
	apply(req.Address, &u.Address)
	apply(req.Number, &u.Number)
	apply(req.Complement, &u.Complement)
	apply(req.ZipCode, &u.ZipCode)
	u.IsVerified = false
	u.VerificationCode = &codeHash
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) SetPendingPassword(_ context.Context, id int64, tempHash, codeHash string) error {
	u, ok := m.users[id]
	if !ok {
		return errors.New("no rows")
	}
	u.TempPassword = &tempHash
	u.IsVerified = false
	u.VerificationCode = &codeHash
	return nil
}

func (m *mockUserRepo) MarkVerifiedByEmail(_ context.Context, email string) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			u.IsVerified = true
			u.VerificationCode = nil
			return nil
		}
	}
	return errors.New("no rows")
}

func (m *mockUserRepo) ConfirmPending(_ context.Context, id int64) error {
	u, ok := m.users[id]
	if !ok {
		return errors.New("no rows")
	}
	u.IsVerified = true
	u.VerificationCode = nil
	if u.TempPassword != nil {
		u.PasswordHash = *u.TempPassword
		u.TempPassword = nil
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

type mockPropertyRepo struct {
	nextID     int64
	properties map[int64]*domain.Property
}

func newMockPropertyRepo() *mockPropertyRepo {
	return &mockPropertyRepo{nextID: 1, properties: make(map[int64]*domain.Property)}
}

func (m *mockPropertyRepo) add(p *domain.Property) *domain.Property {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.properties[p.ID] = p
	return p
}

func (m *mockPropertyRepo) Create(_ context.Context, ownerID int64, req *domain.CreatePropertyRequest, slug string) (*domain.Property, error) {
	return m.add(&domain.Property{
		OwnerID:     ownerID,
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Available:   true,
	}), nil
}

func (m *mockPropertyRepo) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *mockPropertyRepo) ListAvailable(_ context.Context) ([]domain.PropertyListing, error) {
	var listings []domain.PropertyListing
	for _, p := range m.properties {
		if p.Available {
			listings = append(listings, domain.PropertyListing{Property: *p})
		}
	}
	return listings, nil
}

func (m *mockPropertyRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Property, error) {
	var properties []domain.Property
	for _, p := range m.properties {
		if p.OwnerID == ownerID {
			properties = append(properties, *p)
		}
	}
	return properties, nil
}

type mockBookingRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{nextID: 1, bookings: make(map[int64]*domain.Booking)}
}

// CreateIfFree mirrors the conditional-insert contract: nil booking and
// nil error when the interval is taken.
func (m *mockBookingRepo) CreateIfFree(_ context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	for _, b := range m.bookings {
		if b.PropertyID == req.PropertyID && domain.Overlaps(b.StartDate, b.EndDate, req.StartDate, req.EndDate) {
			return nil, nil
		}
	}
	b := &domain.Booking{
		ID:         m.nextID,
		PropertyID: req.PropertyID,
		UserID:     userID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CreatedAt:  time.Now(),
	}
	m.nextID++
	m.bookings[b.ID] = b
	return b, nil
}

func (m *mockBookingRepo) ListByUser(_ context.Context, userID int64) ([]domain.RenterBooking, error) {
	var bookings []domain.RenterBooking
	for _, b := range m.bookings {
		if b.UserID == userID {
			bookings = append(bookings, domain.RenterBooking{Booking: *b})
		}
	}
	return bookings, nil
}

func (m *mockBookingRepo) ListByProperty(_ context.Context, propertyID int64) ([]domain.PropertyBooking, error) {
	var bookings []domain.PropertyBooking
	for _, b := range m.bookings {
		if b.PropertyID == propertyID {
			bookings = append(bookings, domain.PropertyBooking{Booking: *b})
		}
	}
	return bookings, nil
}

type mockMessageRepo struct {
	nextID   int64
	messages map[int64]*domain.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{nextID: 1, messages: make(map[int64]*domain.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, senderID, receiverID int64, content string) (*domain.Message, error) {
	msg := &domain.Message{
		ID:         m.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	m.nextID++
	m.messages[msg.ID] = msg
	return msg, nil
}

func (m *mockMessageRepo) ListReceived(_ context.Context, userID int64) ([]domain.InboxMessage, error) {
	var messages []domain.InboxMessage
	for _, msg := range m.messages {
		if msg.ReceiverID == userID {
			messages = append(messages, domain.InboxMessage{Message: *msg})
		}
	}
	return messages, nil
}

func (m *mockMessageRepo) ListSent(_ context.Context, userID int64) ([]domain.OutboxMessage, error) {
	var messages []domain.OutboxMessage
	for _, msg := range m.messages {
		if msg.SenderID == userID {
			messages = append(messages, domain.OutboxMessage{Message: *msg})
		}
	}
	return messages, nil
}
