package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// NewRepos construye todos los repositorios sobre la misma conexión o transacción.
func NewRepos(db *gorm.DB) repository.Repos {
	return repository.Repos{
		Accounts:       NewAccountRepository(db),
		Users:          NewUserRepository(db),
		Roles:          NewRoleRepository(db),
		UserRoles:      NewUserRoleRepository(db),
		AccountRoles:   NewAccountRoleRepository(db),
		Contacts:       NewContactRepository(db),
		UserComments:   NewUserCommentRepository(db),
		Properties:     NewPropertyRepository(db),
		PropertyImages: NewPropertyImageRepository(db),
		Listings:       NewListingRepository(db),
		Prospects:      NewProspectRepository(db),
		Leads:          NewLeadRepository(db),
		Appointments:   NewAppointmentRepository(db),
		Tasks:          NewTaskRepository(db),
		Documents:      NewDocumentRepository(db),
		Deals:          NewDealRepository(db),
		Comments:       NewCommentRepository(db),
		Carteles:       NewCartelRepository(db),
		Locations:      NewLocationRepository(db),
		Website:        NewWebsiteConfigRepository(db),
		Dashboard:      NewDashboardRepository(db),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner con la conexión del Store.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.Repos) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return wrapErr("begin transaction", tx.Error)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback().Error
		}
	}()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return wrapErr("commit transaction", err)
	}
	committed = true
	return nil
}
