package service

import (
	"github.com/relearn-next/internal/constants"
)

// HasCapability 显式能力检查
// superuser 拥有全部能力；staff 仅拥有内容管理能力
func HasCapability(isStaff, isSuperuser bool, capability string) bool {
	if isSuperuser {
		return true
	}
	switch capability {
	case constants.CapabilityArticleWrite:
		return isStaff
	default:
		return false
	}
}
