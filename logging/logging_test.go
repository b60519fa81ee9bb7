package logging

import (
	"testing"

	"go.viam.com/test"
)

func TestLevelStringRoundTrip(t *testing.T) {
	levels := []Level{DEBUG, INFO, WARN, ERROR}
	for _, l := range levels {
		parsed, err := LevelFromString(l.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, l)
	}
}

func TestLevelFromStringAcceptsAliases(t *testing.T) {
	parsed, err := LevelFromString("warning")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, WARN)
}

func TestLevelFromStringRejectsUnknown(t *testing.T) {
	_, err := LevelFromString("trace")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSubloggerProducesUsableLogger(t *testing.T) {
	log := NewTestLogger(t)
	sub := log.Sublogger("child")
	sub.Infof("hello %s", "world")
}
