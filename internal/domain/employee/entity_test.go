package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEmployeeIsActive(t *testing.T) {
	assert.True(t, Employee{Status: "Ativo"}.IsActive())
	assert.True(t, Employee{Status: "ativo"}.IsActive())
	assert.False(t, Employee{Status: "Inativo"}.IsActive())
}

func TestEmployeeSameWorkSite(t *testing.T) {
	a := Employee{WorkSiteID: strPtr("obra-1")}
	b := Employee{WorkSiteID: strPtr("obra-1")}
	c := Employee{WorkSiteID: strPtr("obra-2")}

	assert.True(t, a.SameWorkSite(b))
	assert.False(t, a.SameWorkSite(c))
	assert.False(t, a.SameWorkSite(Employee{}))
}

func TestEmployeeHasRole(t *testing.T) {
	e := Employee{Role: "OPERARIO"}
	assert.True(t, e.HasRole([]string{"Operário", "Sinaleiro"}))
	assert.False(t, e.HasRole([]string{"Gerente"}))
}
