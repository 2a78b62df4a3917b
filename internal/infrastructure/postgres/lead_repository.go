package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo listing_contacts; sin account_id propio, se aísla a través de contacts.
type LeadRepo struct {
	*scopedRepository[entity.ListingContact, *entity.ListingContact]
}

// NewLeadRepository construye el repositorio de leads.
func NewLeadRepository(db *gorm.DB) *LeadRepo {
	base := newScopedRepository[entity.ListingContact](db, "listing contact")
	base.predicate = viaParent("contacts", "contact_id")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, lc *entity.ListingContact) error {
		if lc.ContactType == "" {
			lc.ContactType = entity.ContactTypeBuyer
		}
		if lc.Status != "" && !lc.Status.IsValid() {
			return fmt.Errorf("estado de lead %q: %w", lc.Status, domain.ErrValidation)
		}
		if err := ensureOwned(ctx, db, "contacts", lc.ContactID, accountID); err != nil {
			return err
		}
		if lc.ListingID != nil {
			if err := ensureOwned(ctx, db, "listings", *lc.ListingID, accountID); err != nil {
				return err
			}
		}
		if lc.ProspectID != nil {
			return ensureOwned(ctx, db, "prospects", *lc.ProspectID, accountID)
		}
		return nil
	}
	base.references = map[string]string{"contact_id": "contacts", "listing_id": "listings", "prospect_id": "prospects"}
	return &LeadRepo{scopedRepository: base}
}

// FindBuyerLead lead comprador activo del contacto. Con listingID filtra por ese anuncio;
// sin él devuelve el primero por id. ErrNotFound si no hay ninguno.
func (r *LeadRepo) FindBuyerLead(ctx context.Context, accountID, contactID int64, listingID *int64) (*entity.ListingContact, error) {
	exprs := []clause.Expression{
		clause.Eq{Column: col("contact_id"), Value: contactID},
		clause.Eq{Column: col("contact_type"), Value: entity.ContactTypeBuyer},
		activeOnly(),
	}
	if listingID != nil {
		exprs = append(exprs, clause.Eq{Column: col("listing_id"), Value: *listingID})
	}
	return r.first(ctx, "find buyer lead", accountID, exprs...)
}

// LockContact serializa find-or-create por contacto. En PostgreSQL toma SELECT ... FOR UPDATE
// sobre la fila del contacto; debe llamarse dentro de una transacción.
func (r *LeadRepo) LockContact(ctx context.Context, accountID, contactID int64) error {
	scope, err := WithAccountFilter(accountID, idEq(contactID))
	if err != nil {
		return err
	}
	q := r.db.WithContext(ctx).Model(&entity.Contact{}).Scopes(scope)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	var ids []int64
	if err := q.Pluck("id", &ids).Error; err != nil {
		return wrapErr("lock contact", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("lock contact %d: %w", contactID, domain.ErrNotFound)
	}
	return nil
}
