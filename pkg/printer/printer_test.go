package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefaultsToNullDevice(t *testing.T) {
	for _, kind := range []string{"none", ""} {
		dev, err := Open(kind, "", "")
		require.NoError(t, err)
		assert.False(t, dev.Ready())
		assert.NoError(t, dev.Print([]byte("receipt")))
		assert.NoError(t, dev.Close())
	}
}

func TestOpenRequiresTransportDetails(t *testing.T) {
	_, err := Open("usb", "", "")
	assert.Error(t, err)

	_, err = Open("network", "", "")
	assert.Error(t, err)

	_, err = Open("serial", "", "")
	assert.Error(t, err)
}

func TestOpenBuildsConfiguredDevice(t *testing.T) {
	dev, err := Open("usb", "/dev/usb/lp0", "")
	require.NoError(t, err)
	assert.IsType(t, &usbDevice{}, dev)

	dev, err = Open("network", "", "10.0.0.5:9100")
	require.NoError(t, err)
	assert.IsType(t, &netDevice{}, dev)
}
