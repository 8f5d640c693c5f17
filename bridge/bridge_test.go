package bridge

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilArguments_Panic(t *testing.T) {
	assert.Panics(t, func() { New(nil, &recordingConsumer{}) })
	assert.Panics(t, func() { New(newFakeSim(), nil) })
}

func TestNew_Defaults(t *testing.T) {
	b := New(newFakeSim(), &recordingConsumer{})

	assert.Equal(t, FullCapabilities, b.Capabilities())
	assert.Nil(t, b.ActiveScope())
	assert.Equal(t, 0, b.Pending())
	assert.NotEqual(t, uuid.Nil, b.ID)
}

func TestRegisterAssertions_NotifiesInDiscoveryOrder(t *testing.T) {
	// GIVEN top.ifc holding assertion a1 then cover a2
	f, a1, a2 := simpleDesign()
	c := &recordingConsumer{}
	b := New(f, c)
	b.SetActiveScope(NamedScope("top.checker"))

	// WHEN registration runs
	n := b.RegisterAssertions()

	// THEN the consumer hears about a1 (SVA) then a2 (COVER)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][2]string{{"a1", "SVA"}, {"a2", "COVER"}}, c.created)
	// AND both constructs carry callbacks
	assert.NotEmpty(t, f.reasonsFor(a1))
	assert.NotEmpty(t, f.reasonsFor(a2))
	assert.Equal(t, []string{"top.ifc.a1", "top.ifc.a2"}, constructNames(b.Constructs()))
}

func TestRegisterAssertions_NoticePrecedesCallbacks(t *testing.T) {
	// GIVEN a consumer that inspects the host when notified
	f, a1, _ := simpleDesign()
	var callbacksAtNotice []int
	c := &noticeProbe{onCreate: func(name string) {
		if name == "a1" {
			callbacksAtNotice = append(callbacksAtNotice, len(f.reasonsFor(a1)))
		}
	}}
	b := New(f, c)

	// WHEN registration runs
	b.RegisterAssertions()

	// THEN a1 had no callbacks yet when its notice went out
	assert.Equal(t, []int{0}, callbacksAtNotice)
	assert.NotEmpty(t, f.reasonsFor(a1))
}

type noticeProbe struct {
	recordingConsumer
	onCreate func(name string)
}

func (p *noticeProbe) CreateAssertion(name, kind string) {
	p.onCreate(name)
	p.recordingConsumer.CreateAssertion(name, kind)
}

func TestRegisterAssertions_ReassertsScopeFirst(t *testing.T) {
	f, _, _ := simpleDesign()
	c := &recordingConsumer{}
	b := New(f, c)
	b.SetActiveScope(NamedScope("top.checker"))
	c.calls = nil

	b.RegisterAssertions()

	require.NotEmpty(t, c.calls)
	assert.Equal(t, "scope:top.checker", c.calls[0])
}

func TestRegisterAssertions_Rerun_DuplicatesCallbacks(t *testing.T) {
	// GIVEN a registered design
	f, a1, _ := simpleDesign()
	c := &recordingConsumer{}
	b := New(f, c)
	b.RegisterAssertions()
	first := len(f.reasonsFor(a1))

	// WHEN registration runs again
	b.RegisterAssertions()

	// THEN the discovery list is replaced but callbacks are attached twice
	assert.Len(t, b.Constructs(), 2)
	assert.Len(t, c.created, 4)
	assert.Equal(t, 2*first, len(f.reasonsFor(a1)))

	// AND one event yields two records
	f.fire(a1, CbAssertionStart, simTime(1), nil)
	assert.Equal(t, 2, b.Pending())
}

func TestRelease_RemovesEveryCallback(t *testing.T) {
	// GIVEN a registered design
	f, a1, _ := simpleDesign()
	b := New(f, &recordingConsumer{})
	b.SetActiveScope(NamedScope("top.checker"))
	b.RegisterAssertions()
	f.fire(a1, CbAssertionStart, simTime(5), nil)
	require.NotEmpty(t, f.callbacks)

	// WHEN the bridge is released
	err := b.Release()

	// THEN the host holds no callbacks and the discovery list is empty
	require.NoError(t, err)
	assert.Empty(t, f.callbacks)
	assert.Len(t, f.removed, 18)
	assert.Empty(t, b.Constructs())
	// AND queued records are still drainable
	n, err := b.Drain("svaunit_test")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRelease_TwiceIsHarmless(t *testing.T) {
	f, _, _ := simpleDesign()
	b := New(f, &recordingConsumer{})
	b.RegisterAssertions()
	require.NoError(t, b.Release())

	assert.NoError(t, b.Release())
}

func TestBridges_AreIndependent(t *testing.T) {
	// GIVEN two bridges on the same host
	f, a1, _ := simpleDesign()
	c1, c2 := &recordingConsumer{}, &recordingConsumer{}
	b1, b2 := New(f, c1), New(f, c2)
	b1.SetActiveScope(NamedScope("s1"))
	b2.SetActiveScope(NamedScope("s2"))
	b1.RegisterAssertions()
	b2.RegisterAssertions()
	assert.NotEqual(t, b1.ID, b2.ID)

	// WHEN an event fires and only the first bridge drains
	f.fire(a1, CbAssertionFailure, simTime(9), nil)
	n, err := b1.Drain("r1")
	require.NoError(t, err)

	// THEN each bridge queued its own copy
	assert.Equal(t, 1, n)
	assert.Len(t, c1.forwarded, 1)
	assert.Empty(t, c2.forwarded)
	assert.Equal(t, 1, b2.Pending())
}

func TestWithLogger_RoutesOutput(t *testing.T) {
	// GIVEN a bridge with its own logger
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.InfoLevel)
	f, _, _ := simpleDesign()
	b := New(f, &recordingConsumer{}, WithLogger(l))

	// WHEN registration runs
	b.RegisterAssertions()

	// THEN registration is logged there, tagged with the bridge ID
	out := buf.String()
	assert.Contains(t, out, "Registering assertion: a1 with type: SVA")
	assert.Contains(t, out, "Set callback on assertion: a2")
	assert.Contains(t, out, b.ID.String())
}

func TestMultiConsumer_FansOutAndSkipsNil(t *testing.T) {
	c1, c2 := &recordingConsumer{}, &recordingConsumer{}
	m := MultiConsumer(c1, nil, c2)

	m.SetScope(NamedScope("top"))
	m.CreateAssertion("a1", "SVA")
	m.ForwardEvent("req", Record{Name: "a1", Reason: ReasonStart})

	for _, c := range []*recordingConsumer{c1, c2} {
		assert.Equal(t, []string{"scope:top", "create:a1", "event:req:a1:START"}, c.calls)
	}
}
