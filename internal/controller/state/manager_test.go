package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStateLifecycle(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateTypingName)
	assert.Equal(t, StateTypingName, sm.GetState(1))

	sm.SetState(1, StateTypingContact)
	assert.Equal(t, StateTypingContact, sm.GetState(1))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
}

func TestManagerSetStateNoneDropsEntry(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateAddingSlot)
	sm.SetData(1, DataClientName, "Анна")

	sm.SetState(1, StateNone)

	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetData(1, DataClientName)
	assert.False(t, ok)
}

func TestManagerDataSurvivesStateTransitions(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateTypingName)
	sm.SetData(1, DataClientName, "Анна")
	sm.SetState(1, StateTypingContact)

	v, ok := sm.GetData(1, DataClientName)
	require.True(t, ok)
	assert.Equal(t, "Анна", v)
}

func TestManagerUsersAreIndependent(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateTypingName)
	sm.SetData(1, DataClientName, "Анна")
	sm.SetState(2, StateAddingSlot)

	sm.ClearState(1)

	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Equal(t, StateAddingSlot, sm.GetState(2))
}

func TestManagerClearStateDropsData(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateTypingRequest)
	sm.SetData(1, DataClientName, "Анна")
	sm.SetData(1, DataClientContact, "+79990001122")

	sm.ClearState(1)

	_, okName := sm.GetData(1, DataClientName)
	_, okContact := sm.GetData(1, DataClientContact)
	assert.False(t, okName)
	assert.False(t, okContact)
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateTypingName)
			sm.SetData(id, DataClientName, "client")
			_ = sm.GetState(id)
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		assert.Equal(t, StateNone, sm.GetState(i))
	}
}
