package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularGetMiss(t *testing.T) {
	c := NewSingular[[]int]("years")

	_, err := c.Get()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSingularMutexGetSet(t *testing.T) {
	c := NewSingular[[]int]("years")

	var calls int32
	valueFunc := func() ([]int, error) {
		atomic.AddInt32(&calls, 1)
		return []int{1980, 1981}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.MutexGetSet(valueFunc, time.Minute)
			assert.NoError(t, err)
			assert.Equal(t, []int{1980, 1981}, v)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	v, calculated, err := c.MutexGetSet(valueFunc, time.Minute)
	require.NoError(t, err)
	assert.False(t, calculated)
	assert.Equal(t, []int{1980, 1981}, v)
}

func TestSingularMutexGetSetError(t *testing.T) {
	c := NewSingular[string]("broken")
	boom := errors.New("boom")

	_, calculated, err := c.MutexGetSet(func() (string, error) { return "", boom }, time.Minute)
	assert.True(t, calculated)
	assert.ErrorIs(t, err, boom)

	_, err = c.Get()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSingularDelete(t *testing.T) {
	c := NewSingular[string]("k")
	c.Set("v", time.Minute)
	c.Delete()

	_, err := c.Get()
	assert.ErrorIs(t, err, ErrNotFound)
}
