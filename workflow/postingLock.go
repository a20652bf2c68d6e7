package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquirePostingLock serializes ledger posting across instances using MySQL
// advisory locks. GET_LOCK is connection-scoped, so this must be called on the
// same *gorm.DB that runs the posting transaction. Non-MySQL dialects (the
// sqlite test database) have no advisory locks; posting there relies on the
// wrapping transaction alone.
func AcquirePostingLock(tx *gorm.DB) error {
	if tx.Dialector.Name() != "mysql" {
		return nil
	}
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", postingLockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire ledger posting lock")
	}
	return nil
}

func ReleasePostingLock(tx *gorm.DB) {
	if tx.Dialector.Name() != "mysql" {
		return
	}
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", postingLockName).Scan(&_ok).Error
}

const postingLockName = "ledger:posting"
