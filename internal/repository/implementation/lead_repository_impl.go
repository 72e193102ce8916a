package implementation

import (
	"context"
	"errors"

	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/mapper"
	"promptlycoach-be/internal/model"
	"promptlycoach-be/internal/repository/contract"
	"promptlycoach-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Contacts

type ContactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LeadMapper
}

func NewContactRepository(db *gorm.DB) contract.ContactRepository {
	return &ContactRepositoryImpl{db: db, mapper: mapper.NewLeadMapper()}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *entity.Contact) error {
	m := r.mapper.ContactToModel(contact)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*contact = *r.mapper.ContactToEntity(m)
	return nil
}

func (r *ContactRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error) {
	var m model.Contact
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ContactToEntity(&m), nil
}

// Service requests

type ServiceRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LeadMapper
}

func NewServiceRequestRepository(db *gorm.DB) contract.ServiceRequestRepository {
	return &ServiceRequestRepositoryImpl{db: db, mapper: mapper.NewLeadMapper()}
}

func (r *ServiceRequestRepositoryImpl) Create(ctx context.Context, request *entity.ServiceRequest) error {
	m := r.mapper.ServiceRequestToModel(request)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ServiceRequestToEntity(m)
	return nil
}

func (r *ServiceRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ServiceRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Consultations

type ConsultationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LeadMapper
}

func NewConsultationRepository(db *gorm.DB) contract.ConsultationRepository {
	return &ConsultationRepositoryImpl{db: db, mapper: mapper.NewLeadMapper()}
}

func (r *ConsultationRepositoryImpl) Create(ctx context.Context, consultation *entity.Consultation) error {
	m := r.mapper.ConsultationToModel(consultation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*consultation = *r.mapper.ConsultationToEntity(m)
	return nil
}

func (r *ConsultationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Consultation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Phone calls

type PhoneCallRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LeadMapper
}

func NewPhoneCallRepository(db *gorm.DB) contract.PhoneCallRepository {
	return &PhoneCallRepositoryImpl{db: db, mapper: mapper.NewLeadMapper()}
}

func (r *PhoneCallRepositoryImpl) Create(ctx context.Context, call *entity.PhoneCall) error {
	m := r.mapper.PhoneCallToModel(call)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*call = *r.mapper.PhoneCallToEntity(m)
	return nil
}
