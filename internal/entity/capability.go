package entity

// Capability ist eine einzelne Berechtigung. Rollen werden nur über Capabilities geprüft,
// nie über Rollennamen im Handler.
type Capability string

const (
	CapRegisterVorgang  Capability = "vorgang:register"
	CapEditVorgang      Capability = "vorgang:edit"
	CapDeleteVorgang    Capability = "vorgang:delete"
	CapDesignateVorgang Capability = "vorgang:designate"
	CapViewRegistry     Capability = "vorgang:view"
	CapViewStatistics   Capability = "vorgang:statistics"
	CapWorkAssignment   Capability = "assignment:work"
	CapUploadAttachment Capability = "attachment:upload"
	CapListUsers        Capability = "user:list"
	CapManageUsers      Capability = "user:manage"
	CapManageCatalog    Capability = "catalog:manage"
)

var roleCapabilities = map[UserRole][]Capability{
	EMPFAENGER: {
		CapRegisterVorgang,
		CapEditVorgang,
		CapDeleteVorgang,
		CapViewRegistry,
	},
	DISPONENT: {
		CapDesignateVorgang,
		CapDeleteVorgang,
		CapViewRegistry,
		CapListUsers,
	},
	TECHNIKER: {
		CapWorkAssignment,
		CapUploadAttachment,
	},
	ADMIN: {
		CapRegisterVorgang,
		CapEditVorgang,
		CapDeleteVorgang,
		CapDesignateVorgang,
		CapViewRegistry,
		CapViewStatistics,
		CapWorkAssignment,
		CapUploadAttachment,
		CapListUsers,
		CapManageUsers,
		CapManageCatalog,
	},
}

// Can meldet, ob die Rolle die Capability besitzt. Unbekannte Rollen besitzen keine.
func (u UserRole) Can(c Capability) bool {
	for _, granted := range roleCapabilities[u] {
		if granted == c {
			return true
		}
	}
	return false
}
