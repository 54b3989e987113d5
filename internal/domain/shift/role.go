package shift

// RoleCode identifies a worker's function on a shift.
type RoleCode string

const (
	RoleCrewChief         RoleCode = "CC"
	RoleStagehand         RoleCode = "SH"
	RoleForkOperator      RoleCode = "FO"
	RoleReachForkOperator RoleCode = "RFO"
	RoleRigger            RoleCode = "RG"
	RoleGeneralLaborer    RoleCode = "GL"

	// RoleLegacyWorker is a retired role code still present in old rows.
	// Converted to stagehand by the administrative migration.
	RoleLegacyWorker RoleCode = "WR"
)

// EligibilityFlag names the worker flag a role requires, if any.
type EligibilityFlag string

const (
	EligibilityNone         EligibilityFlag = ""
	EligibilityCrewChief    EligibilityFlag = "crew_chief"
	EligibilityForkOperator EligibilityFlag = "fork_operator"
)

// RoleInfo describes a role code's display name and eligibility requirement.
type RoleInfo struct {
	DisplayName string
	Eligibility EligibilityFlag
}

// Roles is the closed lookup table over the six active role codes.
var Roles = map[RoleCode]RoleInfo{
	RoleCrewChief:         {DisplayName: "Crew Chief", Eligibility: EligibilityCrewChief},
	RoleStagehand:         {DisplayName: "Stagehand", Eligibility: EligibilityNone},
	RoleForkOperator:      {DisplayName: "Fork Operator", Eligibility: EligibilityForkOperator},
	RoleReachForkOperator: {DisplayName: "Reach Fork Operator", Eligibility: EligibilityForkOperator},
	RoleRigger:            {DisplayName: "Rigger", Eligibility: EligibilityNone},
	RoleGeneralLaborer:    {DisplayName: "General Laborer", Eligibility: EligibilityNone},
}

// IsValid reports whether the role code is one of the six active codes.
func (r RoleCode) IsValid() bool {
	_, ok := Roles[r]
	return ok
}

// DisplayName returns the human-readable name for the role code.
func (r RoleCode) DisplayName() string {
	if info, ok := Roles[r]; ok {
		return info.DisplayName
	}
	return string(r)
}

// RequiredEligibility returns the eligibility flag the role demands, if any.
func (r RoleCode) RequiredEligibility() EligibilityFlag {
	if info, ok := Roles[r]; ok {
		return info.Eligibility
	}
	return EligibilityNone
}
