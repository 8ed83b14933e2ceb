package ledger

import (
	"fmt"

	"verdant.eco/ledger/model"
)

// AuthorizeValidator grants validator rights on a project. Only the project
// owner may authorize; repeated authorization is a no-op and keeps the
// original record.
func (l *Ledger) AuthorizeValidator(actor model.Identity, projectID uint64, validator model.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.projects[projectID]
	if !ok {
		return model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("project %d not found", projectID))
	}
	if actor != p.Owner {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "only the project owner may authorize validators")
	}
	if validator == "" {
		return model.NewError(model.KindInvalidInput, model.CodeInvalidIdentity, "validator identity is required")
	}

	key := validatorKey{projectID, validator}
	if _, exists := l.validators[key]; exists {
		return nil
	}
	l.validators[key] = &model.ValidatorAuthorization{
		ProjectID:    projectID,
		Validator:    validator,
		AuthorizedAt: l.now(),
		AuthorizedBy: actor,
	}
	return nil
}

// RevokeValidator removes validator rights. Removal is unconditional and
// never retroactively invalidates attestations the validator already
// recorded.
func (l *Ledger) RevokeValidator(actor model.Identity, projectID uint64, validator model.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.projects[projectID]
	if !ok {
		return model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("project %d not found", projectID))
	}
	if actor != p.Owner {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "only the project owner may revoke validators")
	}

	delete(l.validators, validatorKey{projectID, validator})
	return nil
}

// IsValidator reports whether identity currently holds validator rights on
// the project.
func (l *Ledger) IsValidator(projectID uint64, identity model.Identity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.validators[validatorKey{projectID, identity}]
	return ok
}

// RegisterDataSource registers (or re-registers) an external data source and
// binds it to the interface identity allowed to submit on its behalf. Admin
// only; authorization is global, not per project.
func (l *Ledger) RegisterDataSource(actor model.Identity, sourceID string, iface model.Identity, name, description string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if actor != l.admin {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "only the admin may register data sources")
	}
	if sourceID == "" {
		return model.NewError(model.KindInvalidInput, model.CodeInvalidIdentity, "source id is required")
	}
	if iface == "" {
		return model.NewError(model.KindInvalidInput, model.CodeInvalidIdentity, "source interface identity is required")
	}

	l.sources[sourceID] = &model.DataSourceAuthorization{
		SourceID:     sourceID,
		Interface:    iface,
		Name:         name,
		Description:  description,
		AuthorizedAt: l.now(),
	}
	return nil
}

// SourceInterface returns the interface identity registered for a source id.
func (l *Ledger) SourceInterface(sourceID string) (model.Identity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.sources[sourceID]
	if !ok {
		return "", false
	}
	return src.Interface, true
}
