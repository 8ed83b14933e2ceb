package ledger

import (
	"fmt"
	"math"
	"math/bits"

	"verdant.eco/ledger/model"
)

// RegisterImpactType registers or updates an impact type and marks it active.
// Admin only.
func (l *Ledger) RegisterImpactType(actor model.Identity, name string, conversionFactor uint64, unit string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if actor != l.admin {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "only the admin may register impact types")
	}
	if name == "" {
		return model.NewError(model.KindInvalidInput, model.CodeInvalidImpactType, "impact type name is required")
	}

	l.impactTypes[name] = &model.ImpactType{
		Name:             name,
		ConversionFactor: conversionFactor,
		Unit:             unit,
		Active:           true,
	}
	return nil
}

// DeactivateImpactType marks an impact type inactive. Admin only. Claims
// already verified keep their normalized totals; only future finalizations
// are affected.
func (l *Ledger) DeactivateImpactType(actor model.Identity, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if actor != l.admin {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "only the admin may deactivate impact types")
	}
	t, ok := l.impactTypes[name]
	if !ok {
		return model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("impact type %q not registered", name))
	}
	t.Active = false
	return nil
}

// Normalize converts amount into the normalized impact unit: amount times the
// type's conversion factor while the type is active, zero otherwise. The
// conversion is applied only at finalization time, never per attestation.
func (l *Ledger) Normalize(name string, amount uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.normalizeLocked(name, amount)
}

func (l *Ledger) normalizeLocked(name string, amount uint64) uint64 {
	t, ok := l.impactTypes[name]
	if !ok || !t.Active {
		return 0
	}
	return mulSat(amount, t.ConversionFactor)
}

// mulSat multiplies saturating at MaxUint64. A wrapped product would
// silently credit a smaller normalized impact than was verified.
func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// addSat adds saturating at MaxUint64, for the running totals.
func addSat(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return s
}

// RegisterProject records a project and auto-authorizes its owner as a
// validator. Returns the new project id.
func (l *Ledger) RegisterProject(owner model.Identity, name string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if owner == "" {
		return 0, model.NewError(model.KindInvalidInput, model.CodeInvalidIdentity, "project owner is required")
	}

	id := l.nextProjectID
	l.nextProjectID++
	l.projects[id] = &model.Project{ID: id, Owner: owner, Name: name}
	l.validators[validatorKey{id, owner}] = &model.ValidatorAuthorization{
		ProjectID:    id,
		Validator:    owner,
		AuthorizedAt: l.now(),
		AuthorizedBy: owner,
	}
	return id, nil
}
