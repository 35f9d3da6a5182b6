package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Clock supplies "now"; every booking rule reads it per call.
type Clock interface {
	Now() time.Time
}

// BookingFilter selects the bookings of one user in one role.
type BookingFilter struct {
	UserID int64
	Role   models.BookingRole
	State  models.BookingState
	Now    time.Time
	Limit  int
	Offset int
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status models.BookingStatus) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error)
	GetBookingsByItems(ctx context.Context, itemIDs []int64, status models.BookingStatus) ([]*models.Booking, error)
	HasStartedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error)
}

type ItemRequestRepository interface {
	CreateItemRequest(ctx context.Context, request *models.ItemRequest) error
	GetItemRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetItemRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	GetItemRequestsExcept(ctx context.Context, requesterID int64, limit, offset int) ([]*models.ItemRequest, error)
}

// Repository is the full persistence surface implemented by database.DB.
type Repository interface {
	BookingRepository
	UserRepository
	ItemRepository
	ItemRequestRepository
	PingContext(ctx context.Context) error
}

// ItemCache holds item records looked up on the booking path. Get returns
// nil, nil on a miss.
type ItemCache interface {
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	SetItem(ctx context.Context, item *models.Item) error
	InvalidateItem(ctx context.Context, id int64) error
}

// RateLimiter counts requests per key in a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID int64, input models.BookingInput) (*models.BookingView, error)
	SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.BookingView, error)
	GetBooking(ctx context.Context, bookingID, requesterID int64) (*models.BookingView, error)
	ListBookings(ctx context.Context, userID int64, role models.BookingRole, state string, page models.Page) ([]models.BookingView, error)
	ExportBookings(ctx context.Context, ownerID int64, state string, limit int) ([]models.BookingView, error)
}

type UserService interface {
	CreateUser(ctx context.Context, input models.UserInput) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, input models.ItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetItem(ctx context.Context, itemID, requesterID int64) (*models.ItemView, error)
	GetOwnerItems(ctx context.Context, ownerID int64) ([]models.ItemView, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	DeleteItem(ctx context.Context, ownerID, itemID int64) error
	AddComment(ctx context.Context, authorID, itemID int64, input models.CommentInput) (*models.CommentView, error)
}

type ItemRequestService interface {
	CreateRequest(ctx context.Context, userID int64, input models.ItemRequestInput) (*models.ItemRequestView, error)
	GetOwnRequests(ctx context.Context, userID int64) ([]models.ItemRequestView, error)
	GetOtherRequests(ctx context.Context, userID int64, page models.Page) ([]models.ItemRequestView, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequestView, error)
}
