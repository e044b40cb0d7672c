package services_test

import (
	"testing"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/shipment"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/services"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageSynchronizer_Plan(t *testing.T) {
	sync := services.NewPackageSynchronizer()

	t.Run("empty_state_creates_all_packages", func(t *testing.T) {
		plan, err := sync.Plan(nil, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, plan.EffectiveTotal)
		assert.Equal(t, []int{1, 2, 3}, plan.ToCreate)
		assert.Empty(t, plan.ToDelete)
	})

	t.Run("gaps_are_filled", func(t *testing.T) {
		existing := []shipment.Package{{PkgNo: 1}, {PkgNo: 3}}

		plan, err := sync.Plan(existing, 4)

		require.NoError(t, err)
		assert.Equal(t, []int{2, 4}, plan.ToCreate)
		assert.Empty(t, plan.ToDelete)
	})

	t.Run("unloaded_extras_are_deleted", func(t *testing.T) {
		existing := []shipment.Package{{PkgNo: 1}, {PkgNo: 2}, {PkgNo: 3}, {PkgNo: 4}}

		plan, err := sync.Plan(existing, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, plan.EffectiveTotal)
		assert.Empty(t, plan.ToCreate)
		assert.Equal(t, []int{3, 4}, plan.ToDelete)
	})

	t.Run("loaded_package_above_target_raises_effective_total", func(t *testing.T) {
		existing := []shipment.Package{
			{PkgNo: 1, Loaded: true},
			{PkgNo: 2},
			{PkgNo: 3},
			{PkgNo: 5, Loaded: true},
		}

		plan, err := sync.Plan(existing, 2)

		require.NoError(t, err)
		assert.Equal(t, 5, plan.EffectiveTotal)
		assert.Equal(t, []int{4}, plan.ToCreate)
		assert.Empty(t, plan.ToDelete, "loaded packages must never be deleted")
	})

	t.Run("already_synchronized_is_a_no_op", func(t *testing.T) {
		existing := []shipment.Package{{PkgNo: 1, Loaded: true}, {PkgNo: 2}}

		plan, err := sync.Plan(existing, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, plan.EffectiveTotal)
		assert.Empty(t, plan.ToCreate)
		assert.Empty(t, plan.ToDelete)
	})

	t.Run("non_positive_target_is_rejected", func(t *testing.T) {
		_, err := sync.Plan(nil, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
