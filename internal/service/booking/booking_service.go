package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/kafka"
	"github.com/Domenick1991/tripavista/internal/service/pricing"
	"github.com/google/uuid"
)

const (
	MissingContextNotice = "No booking information found"
	TicketEmailNotice    = "Ticket will be sent to your email"
	RoadmapEmailNotice   = "Trip roadmap will be sent to your email"
	HomeRoute            = "/"
	ProfileRoute         = "/profile"

	maxReferenceAttempts = 5
)

type BookingUseCase interface {
	CreateDraft(ctx context.Context, input DraftInput) (*domain.BookingDraft, error)
	PreviewDraft(ctx context.Context, destination, date string) (*Roadmap, error)
	PreviewRoadmap(ctx context.Context, draft *domain.BookingDraft, days int) (*Roadmap, error)
	BeginCheckout(ctx context.Context, roadmap *Roadmap) (*Checkout, error)
	Pay(ctx context.Context, checkout *Checkout, payment PaymentDetails) (*domain.Ticket, error)
	Ticket(ctx context.Context, reference string) (*domain.Ticket, error)
	Recover(ctx context.Context, route string) Redirect
	RequestTicketEmail(ctx context.Context, reference string) error
	RequestRoadmapEmail(ctx context.Context, draft *domain.BookingDraft) error
}

// Itinerary is the generator behind roadmaps and confirmations.
type Itinerary interface {
	Generate(destination string, start time.Time, days int) ([]domain.ItineraryDay, error)
	Travel(destination string, start time.Time) domain.TravelPlan
	AssignReferences(destination string, plan domain.TravelPlan) domain.TravelPlan
	BookingReference(at time.Time) string
	QRCode() string
}

type Cache interface {
	AcquirePaymentLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleasePaymentLock(ctx context.Context, key string) error
	ConfirmPayment(ctx context.Context, key, reference string, ttl time.Duration) error
	ConfirmedReference(ctx context.Context, key string) (string, error)
	GetTicket(ctx context.Context, reference string) (*domain.Ticket, error)
	StoreTicket(ctx context.Context, ticket domain.Ticket, ttl time.Duration) (bool, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Roadmap is a previewed trip. Only PreviewRoadmap and PreviewDraft
// produce one that BeginCheckout accepts.
type Roadmap struct {
	Draft       domain.BookingDraft   `json:"booking"`
	Days        []domain.ItineraryDay `json:"days"`
	Travel      domain.TravelPlan     `json:"travel"`
	CanCheckout bool                  `json:"can_checkout"`

	state State
}

// Checkout is a priced trip awaiting payment. Only BeginCheckout produces
// one that Pay accepts.
type Checkout struct {
	Draft  domain.BookingDraft   `json:"booking"`
	Price  domain.PriceBreakdown `json:"price"`
	Travel domain.TravelPlan     `json:"travel"`

	state State
}

// Redirect tells the client where to go after a recoverable error.
type Redirect struct {
	To      string
	After   time.Duration
	Message string
}

type BookingService struct {
	itinerary          Itinerary
	cache              Cache
	producer           Producer
	log                *slog.Logger
	bookingTopic       string
	notificationsTopic string
	processingDelay    time.Duration
	ticketTTL          time.Duration
	lockTTL            time.Duration
	recoveryDelay      time.Duration
	now                func() time.Time
	onMissingContext   func(route string)
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithProcessingDelay(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.processingDelay = d
	}
}

func WithTicketTTL(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.ticketTTL = d
	}
}

func WithPaymentLockTTL(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.lockTTL = d
	}
}

func WithRecoveryDelay(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.recoveryDelay = d
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// WithMissingContextHook registers a callback run on every recovery.
func WithMissingContextHook(hook func(route string)) BookingServiceOption {
	return func(s *BookingService) {
		s.onMissingContext = hook
	}
}

func NewBookingService(
	itinerary Itinerary,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		itinerary:       itinerary,
		cache:           cache,
		producer:        producer,
		log:             slog.Default(),
		bookingTopic:    bookingTopic,
		processingDelay: 2 * time.Second,
		ticketTTL:       24 * time.Hour,
		lockTTL:         30 * time.Second,
		recoveryDelay:   2 * time.Second,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateDraft(ctx context.Context, input DraftInput) (*domain.BookingDraft, error) {
	draft, err := NewDraft(input)
	if err != nil {
		return nil, err
	}
	if _, err := Transition(StateBrowsing, EventSubmitBooking, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// PreviewDraft is the preview entry point of the destinations page: a
// three day roadmap for a draft without contact details.
func (s *BookingService) PreviewDraft(ctx context.Context, destination, date string) (*Roadmap, error) {
	draft, err := NewPreviewDraft(destination, date, s.now())
	if err != nil {
		return nil, err
	}
	return s.PreviewRoadmap(ctx, &draft, 3)
}

func (s *BookingService) PreviewRoadmap(ctx context.Context, draft *domain.BookingDraft, days int) (*Roadmap, error) {
	if draft == nil {
		return nil, domain.ErrMissingContext
	}
	if err := ValidateDraft(*draft, false); err != nil {
		return nil, err
	}
	state, err := Transition(StateDraftCreated, EventViewRoadmap, draft)
	if err != nil {
		return nil, err
	}

	start, _ := draft.StartDate()
	plan, err := s.itinerary.Generate(draft.Destination, start, days)
	if err != nil {
		return nil, err
	}
	return &Roadmap{
		Draft:       *draft,
		Days:        plan,
		Travel:      s.itinerary.Travel(draft.Destination, start),
		CanCheckout: draft.HasContact(),
		state:       state,
	}, nil
}

func (s *BookingService) BeginCheckout(ctx context.Context, roadmap *Roadmap) (*Checkout, error) {
	if roadmap == nil || roadmap.state != StateRoadmapPreviewed {
		return nil, domain.ErrMissingContext
	}
	draft := roadmap.Draft
	state, err := Transition(roadmap.state, EventProceedToPayment, &draft)
	if err != nil {
		return nil, err
	}
	price, err := pricing.ComputeTotal(draft.Price, draft.Travelers)
	if err != nil {
		return nil, err
	}
	return &Checkout{
		Draft:  draft,
		Price:  price,
		Travel: roadmap.Travel,
		state:  state,
	}, nil
}

// Pay confirms a checkout. Once the payment is submitted it runs to
// completion even if ctx is cancelled. References are generated here and
// nowhere else; Ticket serves them back unchanged.
func (s *BookingService) Pay(ctx context.Context, checkout *Checkout, payment PaymentDetails) (*domain.Ticket, error) {
	if checkout == nil || checkout.state != StatePaymentPending {
		return nil, domain.ErrMissingContext
	}
	payment = payment.Normalize()
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	draft := checkout.Draft
	if _, err := Transition(checkout.state, EventSubmitPayment, &draft); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	lockKey, err := paymentLockKey(draft)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		ok, err := s.cache.AcquirePaymentLock(ctx, lockKey, s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire payment lock: %w", err)
		}
		if !ok {
			return nil, s.lockHeld(ctx, lockKey)
		}
	}

	if s.processingDelay > 0 {
		time.Sleep(s.processingDelay)
	}

	confirmedAt := s.now()
	ticket := domain.Ticket{
		Draft: draft,
		Confirmation: domain.Confirmation{
			Reference:     s.itinerary.BookingReference(confirmedAt),
			QRCode:        s.itinerary.QRCode(),
			Travel:        s.itinerary.AssignReferences(draft.Destination, checkout.Travel),
			Price:         checkout.Price,
			PaymentMethod: payment.Method,
			CardLast4:     payment.Last4(),
			ConfirmedAt:   confirmedAt,
		},
	}

	if s.cache != nil {
		if err := s.storeTicket(ctx, &ticket); err != nil {
			if err := s.cache.ReleasePaymentLock(ctx, lockKey); err != nil {
				s.log.Warn("failed to release payment lock", slog.String("key", lockKey), slog.Any("error", err))
			}
			return nil, err
		}
		if err := s.cache.ConfirmPayment(ctx, lockKey, ticket.Confirmation.Reference, s.ticketTTL); err != nil {
			s.log.Warn("failed to mark payment confirmed", slog.String("key", lockKey), slog.Any("error", err))
		}
	}
	s.log.Info("booking confirmed",
		slog.String("reference", ticket.Confirmation.Reference),
		slog.String("destination", draft.Destination),
		slog.Int64("total", ticket.Confirmation.Price.Total),
	)

	event := confirmedEvent(ticket)
	if err := s.publish(ctx, s.bookingTopic, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", event.Type), slog.String("reference", event.Reference), slog.Any("error", err))
	}
	if err := s.publish(ctx, s.notificationsTopic, event); err != nil {
		s.log.Warn("failed to publish notification", slog.String("type", event.Type), slog.String("reference", event.Reference), slog.Any("error", err))
	}
	return &ticket, nil
}

func (s *BookingService) Ticket(ctx context.Context, reference string) (*domain.Ticket, error) {
	if reference == "" {
		return nil, domain.ErrMissingContext
	}
	if s.cache == nil {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, reference)
	}
	ticket, err := s.cache.GetTicket(ctx, reference)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, reference)
	}
	return ticket, nil
}

// Recover handles a step reached without its draft: the hook runs once
// and the client is sent home after the recovery delay.
func (s *BookingService) Recover(ctx context.Context, route string) Redirect {
	s.log.Warn("missing booking context", slog.String("route", route))
	if s.onMissingContext != nil {
		s.onMissingContext(route)
	}
	return Redirect{To: HomeRoute, After: s.recoveryDelay, Message: MissingContextNotice}
}

func (s *BookingService) RequestTicketEmail(ctx context.Context, reference string) error {
	ticket, err := s.Ticket(ctx, reference)
	if err != nil {
		return err
	}
	event := confirmedEvent(*ticket)
	event.Type = kafka.EventTicketEmailRequested
	event.Message = TicketEmailNotice
	return s.publish(ctx, s.notificationsTopic, event)
}

func (s *BookingService) RequestRoadmapEmail(ctx context.Context, draft *domain.BookingDraft) error {
	if draft == nil {
		return domain.ErrMissingContext
	}
	if draft.Email == "" {
		return domain.ErrContactRequired
	}
	return s.publish(ctx, s.notificationsTopic, kafka.TripEvent{
		Type:        kafka.EventRoadmapEmailRequested,
		Name:        draft.Name,
		Email:       draft.Email,
		Destination: draft.Destination,
		Date:        draft.Date,
		Travelers:   draft.Travelers,
		Message:     RoadmapEmailNotice,
		OccurredAt:  s.now(),
	})
}

func (s *BookingService) publish(ctx context.Context, topic string, event kafka.TripEvent) error {
	if s.producer == nil || topic == "" {
		return nil
	}
	key := event.Reference
	if key == "" {
		key = event.Email
	}
	return s.producer.Publish(ctx, topic, key, event)
}

func confirmedEvent(t domain.Ticket) kafka.TripEvent {
	return kafka.TripEvent{
		Type:        kafka.EventBookingConfirmed,
		Reference:   t.Confirmation.Reference,
		Name:        t.Draft.Name,
		Email:       t.Draft.Email,
		Destination: t.Draft.Destination,
		Date:        t.Draft.Date,
		Travelers:   t.Draft.Travelers,
		Total:       t.Confirmation.Price.Total,
		Message:     PaymentMessage(t.Confirmation.Price.Total),
		OccurredAt:  t.Confirmation.ConfirmedAt,
	}
}

// storeTicket caches the ticket under a reference no other ticket holds,
// drawing a new reference when the first one is taken. A cache failure is
// logged and the ticket is returned uncached.
func (s *BookingService) storeTicket(ctx context.Context, ticket *domain.Ticket) error {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		stored, err := s.cache.StoreTicket(ctx, *ticket, s.ticketTTL)
		if err != nil {
			s.log.Error("failed to cache ticket", slog.String("reference", ticket.Confirmation.Reference), slog.Any("error", err))
			return nil
		}
		if stored {
			return nil
		}
		s.log.Warn("booking reference taken", slog.String("reference", ticket.Confirmation.Reference))
		ticket.Confirmation.Reference = s.itinerary.BookingReference(ticket.Confirmation.ConfirmedAt)
	}
	return errors.New("no free booking reference")
}

// lockHeld tells a payment still processing apart from a draft that was
// already confirmed.
func (s *BookingService) lockHeld(ctx context.Context, lockKey string) error {
	reference, err := s.cache.ConfirmedReference(ctx, lockKey)
	if err != nil {
		return fmt.Errorf("read payment lock: %w", err)
	}
	if reference != "" {
		return fmt.Errorf("%w: booking already confirmed as %s", domain.ErrIllegalTransition, reference)
	}
	return domain.ErrPaymentInProgress
}

// paymentLockKey identifies a draft, so resubmitting the same draft hits
// the same lock.
func paymentLockKey(d domain.BookingDraft) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String(), nil
}

// IsRecoverable reports whether err should be answered with Recover.
func IsRecoverable(err error) bool {
	return errors.Is(err, domain.ErrMissingContext)
}

var _ BookingUseCase = (*BookingService)(nil)
