// The only reason this package exists is because both the loader and the
// configuration need the same enums and I do not want loader to depend on
// configuration. So enums live separately.
package common

//go:generate go tool go-enum --names --marshal

// Style registration run mode.
// ENUM(sync, async)
type RunMode int

// Group of registered styles to operate on.
// ENUM(all, onlyThemable, onlyNonThemable)
type ClearScope int

// Themable reports if scope selects themable records.
func (s ClearScope) Themable() bool {
	return s == ClearScopeAll || s == ClearScopeOnlyThemable
}

// NonThemable reports if scope selects non-themable records.
func (s ClearScope) NonThemable() bool {
	return s == ClearScopeAll || s == ClearScopeOnlyNonThemable
}
