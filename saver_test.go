package maskpaint

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaver_CoalescesBurstIntoOneRun(t *testing.T) {
	assert := assert.New(t)

	var runs int32
	s := NewSaver(20*time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	for i := 0; i < 10; i++ {
		s.Request()
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(300 * time.Millisecond)

	assert.Equal(int32(1), atomic.LoadInt32(&runs))
}

func TestSaver_SeparateWindowsRunSeparately(t *testing.T) {
	assert := assert.New(t)

	var runs int32
	s := NewSaver(20*time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Request()
	time.Sleep(200 * time.Millisecond)
	s.Request()
	time.Sleep(200 * time.Millisecond)

	assert.Equal(int32(2), atomic.LoadInt32(&runs))
}

func TestSaver_CancelDropsPendingRun(t *testing.T) {
	assert := assert.New(t)

	var runs int32
	s := NewSaver(50*time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Request()
	s.Cancel()
	time.Sleep(200 * time.Millisecond)

	assert.Equal(int32(0), atomic.LoadInt32(&runs))
}

func TestSaver_FlushRunsImmediately(t *testing.T) {
	assert := assert.New(t)

	var runs int32
	s := NewSaver(time.Hour, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Request()
	assert.NoError(s.Flush())
	assert.Equal(int32(1), atomic.LoadInt32(&runs))

	// Nothing pending, the flush is a no-op.
	assert.NoError(s.Flush())
	assert.Equal(int32(1), atomic.LoadInt32(&runs))
}

func TestSaver_NilRunIsIgnored(t *testing.T) {
	s := NewSaver(10*time.Millisecond, nil)
	s.Request()
	time.Sleep(50 * time.Millisecond)

	assert.NoError(t, s.Flush())
}

func TestSaver_SetDelayAppliesToNextRequest(t *testing.T) {
	assert := assert.New(t)

	var runs int32
	s := NewSaver(time.Hour, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	s.SetDelay(10 * time.Millisecond)

	s.Request()
	time.Sleep(200 * time.Millisecond)

	assert.Equal(int32(1), atomic.LoadInt32(&runs))
}
