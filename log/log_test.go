package log_test

import (
	"testing"

	. "github.com/ddnshook/ddnshook/log"

	"github.com/ddnshook/ddnshook/mock"
)

func TestLevels(t *testing.T) {
	var w mock.IOWriter
	SetOut(&w)
	if Out() != &w {
		t.Fatal("SetOut or Out failed")
	}

	SetLevel(SilentLevel)
	if Level() != SilentLevel {
		t.Error("Set Silent failed")
	}
	if IfMajor() || IfMinor() || IfDebug() {
		t.Error("Silent level should not admit any logging")
	}
	if MajorLevel.String() != "Major" {
		t.Error("Wrong Major string", MajorLevel.String())
	}
	if MinorLevel.String() != "Minor" {
		t.Error("Wrong Minor string", MinorLevel.String())
	}
	if DebugLevel.String() != "Debug" {
		t.Error("Wrong Debug string", DebugLevel.String())
	}
	if SilentLevel.String() != "Silent" {
		t.Error("Wrong Silent string", SilentLevel.String())
	}

	Major("Should not log")
	Minor("Should not log")
	Debug("Should not log")
	Majorf("Should not log")
	Minorf("Should not log")
	Debugf("Should not log")
	if w.Len() > 0 {
		t.Error("Silent still logged", w.String())
	}

	w.Reset()
	SetLevel(MajorLevel) // Should accept major but not minor or debug
	Major("a")
	Minor("b")
	Debug("c")
	Majorf("d")
	Minorf("e")
	Debugf("f")

	exp := "a\nd\n"
	if w.String() != exp {
		t.Error("Major level not working. Got:", w.String(), "Exp:", exp)
	}

	w.Reset()
	SetLevel(MinorLevel) // Should accept minor + major but not debug
	Major("a")
	Minor("b")
	Debug("c")
	Majorf("d")
	Minorf("e")
	Debugf("f")
	exp = "a\n" + MinorPrefixForTest + "b\n" + "d\n" + MinorPrefixForTest + "e\n"
	if w.String() != exp {
		t.Error("Minor level not working. Got:", w.String(), "Exp:", exp)
	}
}

func TestFormat(t *testing.T) {
	var w mock.IOWriter
	SetOut(&w)
	SetLevel(MinorLevel)
	// Trick the compiler so vet doesn't warn about a %d with no formatting call
	f := "%"
	f += "d a "
	Major(f, 5)       // Should not format
	Majorf("%d b", 5) // Should format
	exp := "%d a 5\n5 b\n"
	if exp != w.String() {
		t.Error("F and non-F variants not working", w.String(), exp)
	}
}

func TestMultiLine(t *testing.T) {
	var w mock.IOWriter
	SetOut(&w)
	SetLevel(MinorLevel)

	w.Reset()
	Major("a")
	exp := "a\n"
	if exp != w.String() {
		t.Error("Single line failed", exp, w.String())
	}
	w.Reset()
	Major("a\n") // Should produce the same result
	if exp != w.String() {
		t.Error("Trailing NL not chomped", exp, w.String())
	}

	w.Reset()
	Major("a\nb")
	exp = "a\nb\n"
	if exp != w.String() {
		t.Error("Multiline failed", exp, w.String())
	}

	w.Reset()
	Major("a\nb\n\n\n") // Should produce the same result
	if exp != w.String() {
		t.Error("Multiline with many trailing NLs failed", exp, w.String())
	}

	// Check that the prefix is applied to every line
	w.Reset()
	SetLevel(DebugLevel)
	Debug("a\nb")
	exp = DebugPrefixForTest + "a\n" + DebugPrefixForTest + "b\n"
	if exp != w.String() {
		t.Error("Debug prefix not applied per line", exp, w.String())
	}
}
