// Package tables defines the built-in target table catalog. The registry is
// constructed here once and handed to whoever needs it; nothing in this
// package mutates after Registry returns.
package tables

import "github.com/CurtisDeCastro/csv-upsert/internal/core"

// Registry builds the schema registry for the three built-in tables.
// Registration order fixes the file-name resolution priority: guest log
// first, then org entities, then policy risk data.
func Registry() *core.Registry {
	return core.MustNewRegistry(GuestLog(), OrgEntities(), PolicyRisk())
}

// GuestLog is the visitor sign-in sheet: one row per (NAME, LOG_DATE) pair.
func GuestLog() core.TableSchema {
	return core.TableSchema{
		Key:           "guest_log",
		QualifiedName: "ANALYTICS.PUBLIC.GUEST_LOG",
		Columns: []core.Column{
			{Name: "NAME", Type: core.TypeString},
			{Name: "LOG_DATE", Type: core.TypeDate},
		},
		PrimaryKeys: []string{"NAME", "LOG_DATE"},
		Aliases:     []string{"guestlog", "guest"},
	}
}

// OrgEntities is the organization master list keyed by ID.
func OrgEntities() core.TableSchema {
	return core.TableSchema{
		Key:           "org_entities",
		QualifiedName: "ANALYTICS.PUBLIC.ORG_ENTITIES",
		Columns: []core.Column{
			{Name: "ID", Type: core.TypeString},
			{Name: "NAME", Type: core.TypeString},
			{Name: "LEGAL_NAME", Type: core.TypeString},
			{Name: "SEGMENT", Type: core.TypeString},
			{Name: "INDUSTRY", Type: core.TypeString},
			{Name: "REGION", Type: core.TypeString},
			{Name: "COUNTRY", Type: core.TypeString},
			{Name: "CITY", Type: core.TypeString},
			{Name: "STATUS", Type: core.TypeString},
			{Name: "OWNER", Type: core.TypeString},
			{Name: "WEBSITE", Type: core.TypeString},
			{Name: "CREDIT_RATING", Type: core.TypeString},
			{Name: "ANNUAL_REVENUE", Type: core.TypeFloat},
			{Name: "EMPLOYEE_COUNT", Type: core.TypeFloat},
		},
		PrimaryKeys: []string{"ID"},
		Aliases:     []string{"orgentities", "orgentity", "organizations"},
	}
}

// PolicyRisk is the underwriting risk extract keyed by POLICY_ID. Its
// columns span every semantic type the caster supports.
func PolicyRisk() core.TableSchema {
	return core.TableSchema{
		Key:           "policy_risk",
		QualifiedName: "ANALYTICS.PUBLIC.POLICY_RISK_DATA",
		Columns: []core.Column{
			{Name: "POLICY_ID", Type: core.TypeString},
			{Name: "POLICYHOLDER", Type: core.TypeString},
			{Name: "PRODUCT_LINE", Type: core.TypeString},
			{Name: "UNDERWRITER", Type: core.TypeString},
			{Name: "BROKER", Type: core.TypeString},
			{Name: "REGION", Type: core.TypeString},
			{Name: "COUNTRY", Type: core.TypeString},
			{Name: "STATE", Type: core.TypeString},
			{Name: "RISK_CLASS", Type: core.TypeString},
			{Name: "CURRENCY", Type: core.TypeString},
			{Name: "RISK_SCORE", Type: core.TypeFloat},
			{Name: "PREMIUM", Type: core.TypeFloat},
			{Name: "LIMIT_AMOUNT", Type: core.TypeFloat},
			{Name: "DEDUCTIBLE", Type: core.TypeFloat},
			{Name: "TIV", Type: core.TypeFloat},
			{Name: "LOSS_RATIO", Type: core.TypeFloat},
			{Name: "CLAIM_COUNT", Type: core.TypeInteger},
			{Name: "OPEN_CLAIMS", Type: core.TypeInteger},
			{Name: "EXPOSURE_UNITS", Type: core.TypeInteger},
			{Name: "IS_ACTIVE", Type: core.TypeBoolean},
			{Name: "IS_REINSURED", Type: core.TypeBoolean},
			{Name: "EFFECTIVE_DATE", Type: core.TypeDate},
			{Name: "EXPIRATION_DATE", Type: core.TypeDate},
			{Name: "UPDATED_AT", Type: core.TypeDateTime},
		},
		PrimaryKeys: []string{"POLICY_ID"},
		Aliases:     []string{"policyrisk", "riskdata", "policy"},
	}
}
