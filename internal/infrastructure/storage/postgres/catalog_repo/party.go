package catalog_repo

import (
	"agrostock/internal/domain/catalogs/party"
	"agrostock/internal/infrastructure/storage/postgres"
)

var partyColumns = postgres.ExtractDBColumns[party.Party]()

// PartyRepo is the PostgreSQL party repository, bound to a single
// kind (supplier, customer or employee) so name uniqueness and
// listings stay within that kind.
type PartyRepo struct {
	*BaseCatalogRepo[*party.Party]
	kind party.Kind
}

var _ party.Repository = (*PartyRepo)(nil)

// NewPartyRepo creates a party repository for the given kind.
func NewPartyRepo(txm *postgres.TxManager, kind party.Kind) *PartyRepo {
	r := &PartyRepo{kind: kind}
	r.BaseCatalogRepo = NewBaseCatalogRepo(
		txm,
		"parties",
		partyColumns,
		[]string{"name", "note"},
		func() *party.Party { return &party.Party{} },
	)
	r.BaseCatalogRepo.scope = map[string]any{"kind": string(kind)}
	return r
}
