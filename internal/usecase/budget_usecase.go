package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/domain/quote"
	"instala_control/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BudgetAppointmentType = "Instalação"
	DefaultBudgetService  = "Instalação de Ar Condicionado"
)

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrInvalidBudgetID     = errors.New("invalid budget id")
	ErrRendererUnavailable = errors.New("document renderer not configured")
	ErrBudgetRenderFailed  = errors.New("budget document rendering failed")
)

type BudgetItemInput struct {
	ID          string
	Description string
	Qty         int
	Price       decimal.Decimal
}

type BudgetInput struct {
	BudgetNumber  string
	ClientData    entities.ClientData
	ServiceType   string
	PaymentMethod string
	Items         []BudgetItemInput
	PaymentTerms  string
	Validity      string
}

// BudgetDocument is a rendered budget ready for download.
type BudgetDocument struct {
	Filename string
	Content  []byte
}

type IBudgetUseCase interface {
	Create(ctx context.Context, userID string, in BudgetInput) (entities.Budget, error)
	Update(ctx context.Context, userID, id string, in BudgetInput) (entities.Budget, error)
	AddItem(ctx context.Context, userID, id string, item BudgetItemInput) (entities.Budget, error)
	RemoveItem(ctx context.Context, userID, id, itemID string) (entities.Budget, error)
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (entities.Budget, error)
	List(ctx context.Context, userID string) ([]entities.Budget, error)
	NextNumber(ctx context.Context, userID string) (string, error)
	AppointmentDraft(ctx context.Context, userID, id string) (AppointmentInput, error)
	RenderDocument(ctx context.Context, userID, id string) (BudgetDocument, error)
}

type BudgetUseCase struct {
	repo         interfaces.IBudgetRepository
	settingsRepo interfaces.ISettingsRepository
	renderer     interfaces.IDocumentRenderer
	feed         interfaces.IChangeFeed
	ids          *quote.IDSource
	now          func() time.Time
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(repo interfaces.IBudgetRepository, settingsRepo interfaces.ISettingsRepository, renderer interfaces.IDocumentRenderer, feed interfaces.IChangeFeed) *BudgetUseCase {
	return &BudgetUseCase{
		repo:         repo,
		settingsRepo: settingsRepo,
		renderer:     renderer,
		feed:         feed,
		ids:          quote.NewIDSource(time.Now),
		now:          time.Now,
	}
}

// Create validates every line through the quote builder and stores a pending
// budget. A blank number is replaced by the next free one.
func (u *BudgetUseCase) Create(ctx context.Context, userID string, in BudgetInput) (entities.Budget, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Budget{}, err
	}
	qb := quote.NewBuilder(u.ids)
	b, err := u.compose(qb, in)
	if err != nil {
		log.Printf("[budget][usecase] create rejected user_id=%s err=%v", userID, err)
		return entities.Budget{}, err
	}
	if b.BudgetNumber == "" {
		if b.BudgetNumber, err = u.NextNumber(ctx, userID); err != nil {
			return entities.Budget{}, err
		}
	}

	now := u.now().UTC()
	b.ID = uuid.NewString()
	b.UserID = userID
	b.Status = entities.BudgetStatusPending
	b.CreatedAt = now
	b.UpdatedAt = now

	created, err := u.repo.Create(ctx, b)
	if err != nil {
		log.Printf("[budget][usecase] create failed user_id=%s err=%v", userID, err)
		return entities.Budget{}, err
	}
	publishChange(ctx, u.feed, userID, entities.CollectionBudgets)
	log.Printf("[budget][usecase] created user_id=%s budget_id=%s number=%s total=%s", userID, created.ID, created.BudgetNumber, created.Total.StringFixed(2))
	return created, nil
}

// Update replaces the editable fields of a saved budget. Status and creation
// time are kept.
func (u *BudgetUseCase) Update(ctx context.Context, userID, id string, in BudgetInput) (entities.Budget, error) {
	existing, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Budget{}, err
	}
	b, err := u.compose(quote.NewBuilder(u.ids), in)
	if err != nil {
		log.Printf("[budget][usecase] update rejected user_id=%s budget_id=%s err=%v", existing.UserID, existing.ID, err)
		return entities.Budget{}, err
	}
	if b.BudgetNumber == "" {
		b.BudgetNumber = existing.BudgetNumber
	}
	b.ID = existing.ID
	b.UserID = existing.UserID
	b.Status = existing.Status
	b.CreatedAt = existing.CreatedAt
	return u.save(ctx, b)
}

// AddItem appends one line to a saved budget through the builder's edit mode.
func (u *BudgetUseCase) AddItem(ctx context.Context, userID, id string, item BudgetItemInput) (entities.Budget, error) {
	existing, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Budget{}, err
	}
	qb := quote.Edit(existing, u.ids)
	if _, err := qb.AddItem(item.Description, item.Qty, item.Price); err != nil {
		return entities.Budget{}, err
	}
	return u.refinalize(ctx, existing, qb)
}

// RemoveItem drops one line; a budget cannot be left without items.
func (u *BudgetUseCase) RemoveItem(ctx context.Context, userID, id, itemID string) (entities.Budget, error) {
	existing, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Budget{}, err
	}
	qb := quote.Edit(existing, u.ids)
	if err := qb.RemoveItem(strings.TrimSpace(itemID)); err != nil {
		return entities.Budget{}, err
	}
	return u.refinalize(ctx, existing, qb)
}

func (u *BudgetUseCase) refinalize(ctx context.Context, b entities.Budget, qb *quote.Builder) (entities.Budget, error) {
	if err := qb.Finalize(b.ClientData.Name); err != nil {
		return entities.Budget{}, err
	}
	b.Items = qb.Items()
	b.Total = qb.Total()
	return u.save(ctx, b)
}

func (u *BudgetUseCase) save(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	b.UpdatedAt = u.now().UTC()
	updated, err := u.repo.Update(ctx, b)
	if err != nil {
		log.Printf("[budget][usecase] update failed user_id=%s budget_id=%s err=%v", b.UserID, b.ID, err)
		return entities.Budget{}, err
	}
	publishChange(ctx, u.feed, b.UserID, entities.CollectionBudgets)
	return updated, nil
}

func (u *BudgetUseCase) compose(qb *quote.Builder, in BudgetInput) (entities.Budget, error) {
	for _, it := range in.Items {
		if _, err := qb.Put(entities.BudgetItem{ID: it.ID, Description: it.Description, Qty: it.Qty, Price: it.Price}); err != nil {
			return entities.Budget{}, err
		}
	}
	client := entities.ClientData{
		Name:    strings.TrimSpace(in.ClientData.Name),
		Address: strings.TrimSpace(in.ClientData.Address),
		Phone:   strings.TrimSpace(in.ClientData.Phone),
	}
	if err := qb.Finalize(client.Name); err != nil {
		return entities.Budget{}, err
	}

	b := entities.Budget{
		BudgetNumber:  strings.TrimSpace(in.BudgetNumber),
		ClientData:    client,
		ServiceType:   strings.TrimSpace(in.ServiceType),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Items:         qb.Items(),
		PaymentTerms:  strings.TrimSpace(in.PaymentTerms),
		Validity:      strings.TrimSpace(in.Validity),
		Total:         qb.Total(),
	}
	if b.ServiceType == "" {
		b.ServiceType = DefaultBudgetService
	}
	if b.PaymentTerms == "" {
		b.PaymentTerms = entities.DefaultPaymentTerms
	}
	if b.Validity == "" {
		b.Validity = entities.DefaultValidity
	}
	return b, nil
}

func (u *BudgetUseCase) Delete(ctx context.Context, userID, id string) error {
	b, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, b.UserID, b.ID); err != nil {
		log.Printf("[budget][usecase] delete failed user_id=%s budget_id=%s err=%v", b.UserID, b.ID, err)
		return err
	}
	publishChange(ctx, u.feed, b.UserID, entities.CollectionBudgets)
	return nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, userID, id string) (entities.Budget, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Budget{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}
	b, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

// List returns budgets newest first.
func (u *BudgetUseCase) List(ctx context.Context, userID string) ([]entities.Budget, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	all, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	SortBudgets(all)
	return all, nil
}

func SortBudgets(b []entities.Budget) {
	sort.SliceStable(b, func(i, j int) bool { return b[i].CreatedAt.After(b[j].CreatedAt) })
}

func (u *BudgetUseCase) NextNumber(ctx context.Context, userID string) (string, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return "", err
	}
	all, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	numbers := make([]string, 0, len(all))
	for _, b := range all {
		numbers = append(numbers, b.BudgetNumber)
	}
	return quote.NextNumber(numbers), nil
}

// AppointmentDraft pre-fills the schedule form for installing a budget.
func (u *BudgetUseCase) AppointmentDraft(ctx context.Context, userID, id string) (AppointmentInput, error) {
	b, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return AppointmentInput{}, err
	}
	number := b.BudgetNumber
	if number == "" {
		number = "S/N"
	}
	total := b.Total
	return AppointmentInput{
		Client:        b.ClientData.Name,
		Type:          BudgetAppointmentType,
		Address:       b.ClientData.Address,
		Notes:         fmt.Sprintf("Ref. Orçamento #%s. R$ %s.", number, total.StringFixed(2)),
		BudgetID:      b.ID,
		Price:         &total,
		PaymentMethod: b.PaymentMethod,
	}, nil
}

// RenderDocument lays the budget out on the user's letterhead.
func (u *BudgetUseCase) RenderDocument(ctx context.Context, userID, id string) (BudgetDocument, error) {
	b, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return BudgetDocument{}, err
	}
	if u.renderer == nil {
		return BudgetDocument{}, ErrRendererUnavailable
	}
	var settings entities.CompanySettings
	if u.settingsRepo != nil {
		if settings, err = u.settingsRepo.Get(ctx, b.UserID); err != nil {
			return BudgetDocument{}, err
		}
	}
	content, err := u.renderer.RenderBudget(ctx, b, WithSettingsDefaults(settings))
	if err != nil {
		log.Printf("[budget][usecase] render failed user_id=%s budget_id=%s err=%v", b.UserID, b.ID, err)
		return BudgetDocument{}, fmt.Errorf("%w: %v", ErrBudgetRenderFailed, err)
	}
	return BudgetDocument{Filename: BudgetFilename(b), Content: content}, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// BudgetFilename is Orcamento_<number>_<Client_Name>.pdf.
func BudgetFilename(b entities.Budget) string {
	number := strings.TrimSpace(b.BudgetNumber)
	if number == "" {
		number = "Novo"
	}
	client := whitespace.ReplaceAllString(strings.TrimSpace(b.ClientData.Name), "_")
	if client == "" {
		client = "Cliente"
	}
	return fmt.Sprintf("Orcamento_%s_%s.pdf", number, client)
}
