package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExportOptionsDefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.February, 14, 10, 0, 0, 0, time.UTC)
	opts := ExportOptions{}.withDefaults(now)

	require.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), opts.From)
	require.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), opts.To)
}

func TestExportOptionsKeepsExplicitWindow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	opts := ExportOptions{
		From: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
	}.withDefaults(now)

	require.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), opts.From)
	require.Equal(t, time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC), opts.To)
}

func TestExportOptionsCorrectsInvertedWindow(t *testing.T) {
	opts := ExportOptions{
		From: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}.withDefaults(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	require.Equal(t, time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC), opts.To)
}
