package diag

import "testing"

func setCulpritMarkers(t *testing.T, start, end string) {
	saveStart, saveEnd := culpritStart, culpritEnd
	t.Cleanup(func() { culpritStart, culpritEnd = saveStart, saveEnd })
	culpritStart, culpritEnd = start, end
}

func setMessageMarkers(t *testing.T, start, end string) {
	saveStart, saveEnd := messageStart, messageEnd
	t.Cleanup(func() { messageStart, messageEnd = saveStart, saveEnd })
	messageStart, messageEnd = start, end
}
