package state

import (
	"github.com/permadex/godexd/internal/core/types"
)

// IsAdmin reports admin-set membership.
func IsAdmin(v View, account types.AccountID) (bool, error) {
	return v.Has(AdminKey(account))
}

// SetAdmin adds an account to the admin set. There is no removal path.
func SetAdmin(v View, account types.AccountID) error {
	return v.Put(AdminKey(account), []byte{1})
}

// IsUser reports whether an account is whitelisted for pool operations.
func IsUser(v View, account types.AccountID) (bool, error) {
	return v.Has(UserKey(account))
}

// SetUser whitelists an account. Append-only.
func SetUser(v View, account types.AccountID) error {
	return v.Put(UserKey(account), []byte{1})
}

// RootAdmin returns the root admin account, if one has been registered.
func RootAdmin(v View) (types.AccountID, bool, error) {
	data, err := v.Get(RootAdminKey())
	if err != nil || data == nil {
		return "", false, err
	}
	return types.AccountID(data), true, nil
}

// SetRootAdmin records the root admin. Set once, irrevocable.
func SetRootAdmin(v View, account types.AccountID) error {
	return v.Put(RootAdminKey(), []byte(account))
}

// WalletAccount returns the persisted custodial wallet account, if any.
// Its presence doubles as the initialized-once marker for root-admin
// registration.
func WalletAccount(v View) (types.AccountID, bool, error) {
	data, err := v.Get(WalletKey())
	if err != nil || data == nil {
		return "", false, err
	}
	return types.AccountID(data), true, nil
}

// SetWalletAccount persists the custodial wallet account.
func SetWalletAccount(v View, account types.AccountID) error {
	return v.Put(WalletKey(), []byte(account))
}
