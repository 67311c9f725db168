package idempotency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	g := NewGenerator()

	t.Run("same params produce same key", func(t *testing.T) {
		params := map[string]interface{}{
			"coupon_code": "TG-SAVE10",
			"amount":      "250",
		}
		first := g.GenerateKey(ScopePointCredit, params)
		second := g.GenerateKey(ScopePointCredit, params)
		assert.Equal(t, first, second)
	})

	t.Run("param order does not matter", func(t *testing.T) {
		a := g.GenerateKey(ScopePointCredit, map[string]interface{}{
			"coupon_code": "TG-SAVE10",
			"amount":      "250",
		})
		b := g.GenerateKey(ScopePointCredit, map[string]interface{}{
			"amount":      "250",
			"coupon_code": "TG-SAVE10",
		})
		assert.Equal(t, a, b)
	})

	t.Run("different scope produces different key", func(t *testing.T) {
		params := map[string]interface{}{"coupon_code": "TG-SAVE10"}
		credit := g.GenerateKey(ScopePointCredit, params)
		redeem := g.GenerateKey(ScopePointRedeem, params)
		assert.NotEqual(t, credit, redeem)
	})

	t.Run("different params produce different key", func(t *testing.T) {
		a := g.GenerateKey(ScopePointCredit, map[string]interface{}{"amount": "250"})
		b := g.GenerateKey(ScopePointCredit, map[string]interface{}{"amount": "251"})
		assert.NotEqual(t, a, b)
	})

	t.Run("key carries its scope prefix", func(t *testing.T) {
		key := g.GenerateKey(ScopePointRedeem, nil)
		assert.True(t, strings.HasPrefix(key, string(ScopePointRedeem)+"-"))
	})
}

func TestValidateKey(t *testing.T) {
	g := NewGenerator()
	params := map[string]interface{}{"coupon_code": "TG-SAVE10"}

	key := g.GenerateKey(ScopePointCredit, params)
	assert.True(t, g.ValidateKey(ScopePointCredit, params, key))
	assert.False(t, g.ValidateKey(ScopePointRedeem, params, key))
	assert.False(t, g.ValidateKey(ScopePointCredit, map[string]interface{}{"coupon_code": "other"}, key))
}
