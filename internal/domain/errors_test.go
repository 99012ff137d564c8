package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeploymentError(t *testing.T) {
	cause := errors.New("execution reverted")

	err := NewDeploymentError("Pools", StageProxy, cause)
	assert.EqualError(t, err, "deploy Pools (proxy): execution reverted")
	assert.ErrorIs(t, err, cause)

	var de *DeploymentError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, StageProxy, de.Stage)

	// already classified errors keep their original stage
	again := NewDeploymentError("Pools", StageReceipt, err)
	assert.Same(t, err, again)

	assert.NoError(t, NewDeploymentError("Pools", StageProxy, nil))
}
