package gormrepo

import (
	"context"
	"errors"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"gorm.io/gorm"
)

const byUserAndID = "user_id = ? AND id = ?"

// first loads one row; a missing row is reported as found=false.
func first[M any](ctx context.Context, db *gorm.DB, userID, id string) (m M, found bool, err error) {
	err = db.WithContext(ctx).Where(byUserAndID, userID, id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, false, nil
	}
	return m, err == nil, err
}

// replace overwrites every column of an existing row.
func replace[M any](ctx context.Context, db *gorm.DB, userID, id string, m *M) (found bool, err error) {
	res := db.WithContext(ctx).Model(new(M)).Where(byUserAndID, userID, id).Select("*").Updates(m)
	return res.RowsAffected > 0, res.Error
}

func remove[M any](ctx context.Context, db *gorm.DB, userID, id string) error {
	return db.WithContext(ctx).Where(byUserAndID, userID, id).Delete(new(M)).Error
}

func listByUser[M any](ctx context.Context, db *gorm.DB, userID string) ([]M, error) {
	var rows []M
	err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

type ServiceRepository struct{ db *gorm.DB }

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository(db *gorm.DB) *ServiceRepository { return &ServiceRepository{db: db} }

func (r *ServiceRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	m := serviceModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s entities.Service) (entities.Service, error) {
	m := serviceModel(s)
	found, err := replace(ctx, r.db, s.UserID, s.ID, &m)
	if err != nil || !found {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, userID, id string) error {
	return remove[serviceModel](ctx, r.db, userID, id)
}

func (r *ServiceRepository) GetByID(ctx context.Context, userID, id string) (entities.Service, error) {
	m, found, err := first[serviceModel](ctx, r.db, userID, id)
	if err != nil || !found {
		return entities.Service{}, err
	}
	return entities.Service(m), nil
}

func (r *ServiceRepository) ListByUser(ctx context.Context, userID string) ([]entities.Service, error) {
	rows, err := listByUser[serviceModel](ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, entities.Service(m))
	}
	return out, nil
}

type AppointmentRepository struct{ db *gorm.DB }

var _ interfaces.IAppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	m := toAppointmentModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, userID, id string) error {
	return remove[appointmentModel](ctx, r.db, userID, id)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, userID, id string) (entities.Appointment, error) {
	m, found, err := first[appointmentModel](ctx, r.db, userID, id)
	if err != nil || !found {
		return entities.Appointment{}, err
	}
	return fromAppointmentModel(m), nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]entities.Appointment, error) {
	rows, err := listByUser[appointmentModel](ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromAppointmentModel(m))
	}
	return out, nil
}

func toAppointmentModel(a entities.Appointment) appointmentModel {
	return appointmentModel{
		UserID:        a.UserID,
		ID:            a.ID,
		Client:        a.Client,
		Type:          a.Type,
		Date:          a.Date,
		Time:          a.Time,
		Address:       a.Address,
		Notes:         a.Notes,
		Status:        string(a.Status),
		BudgetID:      a.BudgetID,
		Price:         a.Price,
		PaymentMethod: a.PaymentMethod,
		CreatedAt:     a.CreatedAt,
	}
}

func fromAppointmentModel(m appointmentModel) entities.Appointment {
	return entities.Appointment{
		ID:            m.ID,
		UserID:        m.UserID,
		Client:        m.Client,
		Type:          m.Type,
		Date:          m.Date,
		Time:          m.Time,
		Address:       m.Address,
		Notes:         m.Notes,
		Status:        entities.AppointmentStatus(m.Status),
		BudgetID:      m.BudgetID,
		Price:         m.Price,
		PaymentMethod: m.PaymentMethod,
		CreatedAt:     m.CreatedAt,
	}
}

type BudgetRepository struct{ db *gorm.DB }

var _ interfaces.IBudgetRepository = (*BudgetRepository)(nil)

func NewBudgetRepository(db *gorm.DB) *BudgetRepository { return &BudgetRepository{db: db} }

func (r *BudgetRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	m := toBudgetModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetRepository) Update(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	m := toBudgetModel(b)
	found, err := replace(ctx, r.db, b.UserID, b.ID, &m)
	if err != nil || !found {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetRepository) UpdateStatus(ctx context.Context, userID, id string, status entities.BudgetStatus) (entities.Budget, error) {
	res := r.db.WithContext(ctx).Model(&budgetModel{}).Where(byUserAndID, userID, id).Update("status", string(status))
	if res.Error != nil || res.RowsAffected == 0 {
		return entities.Budget{}, res.Error
	}
	return r.GetByID(ctx, userID, id)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id string) error {
	return remove[budgetModel](ctx, r.db, userID, id)
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id string) (entities.Budget, error) {
	m, found, err := first[budgetModel](ctx, r.db, userID, id)
	if err != nil || !found {
		return entities.Budget{}, err
	}
	return fromBudgetModel(m), nil
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID string) ([]entities.Budget, error) {
	rows, err := listByUser[budgetModel](ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Budget, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromBudgetModel(m))
	}
	return out, nil
}

func toBudgetModel(b entities.Budget) budgetModel {
	return budgetModel{
		UserID:        b.UserID,
		ID:            b.ID,
		BudgetNumber:  b.BudgetNumber,
		ClientData:    b.ClientData,
		ServiceType:   b.ServiceType,
		PaymentMethod: b.PaymentMethod,
		Items:         b.Items,
		PaymentTerms:  b.PaymentTerms,
		Validity:      b.Validity,
		Total:         b.Total,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func fromBudgetModel(m budgetModel) entities.Budget {
	return entities.Budget{
		ID:            m.ID,
		UserID:        m.UserID,
		BudgetNumber:  m.BudgetNumber,
		ClientData:    m.ClientData,
		ServiceType:   m.ServiceType,
		PaymentMethod: m.PaymentMethod,
		Items:         m.Items,
		PaymentTerms:  m.PaymentTerms,
		Validity:      m.Validity,
		Total:         m.Total,
		Status:        entities.BudgetStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type SettingsRepository struct{ db *gorm.DB }

var _ interfaces.ISettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

func (r *SettingsRepository) Get(ctx context.Context, userID string) (entities.CompanySettings, error) {
	var m settingsModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.CompanySettings{}, nil
	}
	if err != nil {
		return entities.CompanySettings{}, err
	}
	return entities.CompanySettings(m), nil
}

func (r *SettingsRepository) Put(ctx context.Context, s entities.CompanySettings) (entities.CompanySettings, error) {
	m := settingsModel(s)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return entities.CompanySettings{}, err
	}
	return s, nil
}

func (r *SettingsRepository) List(ctx context.Context) ([]entities.CompanySettings, error) {
	var rows []settingsModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.CompanySettings, 0, len(rows))
	for _, m := range rows {
		out = append(out, entities.CompanySettings(m))
	}
	return out, nil
}

type PaymentRepository struct{ db *gorm.DB }

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	m := paymentModel{
		UserID:          p.UserID,
		ID:              p.ID,
		BudgetID:        p.BudgetID,
		Date:            p.Date,
		Status:          string(p.Status),
		Amount:          p.Amount,
		ProviderPayload: p.ProviderPayload,
		ProviderRaw:     p.ProviderPayloadRaw,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) ListByBudgetID(ctx context.Context, userID, budgetID string) ([]entities.Payment, error) {
	var rows []paymentModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND budget_id = ?", userID, budgetID).Order("date").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, entities.Payment{
			ID:                 m.ID,
			UserID:             m.UserID,
			BudgetID:           m.BudgetID,
			Date:               m.Date,
			Status:             entities.PaymentStatus(m.Status),
			Amount:             m.Amount,
			ProviderPayload:    m.ProviderPayload,
			ProviderPayloadRaw: m.ProviderRaw,
		})
	}
	return out, nil
}
