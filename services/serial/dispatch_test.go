// services/serial/dispatch_test.go
package serial

import (
	"bytes"
	"strings"
	"testing"

	"keypadcode-go/errcode"
	"keypadcode-go/types"
)

func testConfig() *types.Config {
	cfg := &types.Config{
		Name:        "pad",
		AnalogKeys:  make([]types.AnalogKey, 3),
		DigitalKeys: make([]types.DigitalKey, 3),
	}
	for i := range cfg.AnalogKeys {
		k := testAnalogKey()
		k.Index = uint8(i)
		k.KeyChar = byte('x' + i)
		cfg.AnalogKeys[i] = k
	}
	for i := range cfg.DigitalKeys {
		cfg.DigitalKeys[i] = types.DigitalKey{Index: uint8(i), KeyChar: byte('a' + i), HIDEnabled: true}
	}
	return cfg
}

type fakeKeypad struct {
	streaming bool
	setCalls  int
	states    [][2]uint16
}

func (f *fakeKeypad) LiveState(i int) (uint16, uint16) {
	if i < 0 || i >= len(f.states) {
		return 0, 0
	}
	return f.states[i][0], f.states[i][1]
}

func (f *fakeKeypad) SetStreaming(on bool) {
	f.streaming = on
	f.setCalls++
}

type fakeSaver struct {
	calls int
	last  *types.Config
}

func (f *fakeSaver) Save(cfg *types.Config) error {
	f.calls++
	f.last = cfg
	return nil
}

func testDispatcher(cfg *types.Config, opts ...Option) (*Dispatcher, *fakeKeypad, *fakeSaver, *bytes.Buffer) {
	kp := &fakeKeypad{states: [][2]uint16{{3900, 10}, {2500, 200}, {1100, 390}}}
	sv := &fakeSaver{}
	var out bytes.Buffer
	d := New(cfg, kp, sv, nil, &out, opts...)
	return d, kp, sv, &out
}

func lines(out *bytes.Buffer) []string {
	s := strings.TrimRight(out.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestGetOutputOrderAndSentinel(t *testing.T) {
	d, _, _, out := testDispatcher(testConfig())
	if err := d.HandleLine("get"); err != nil {
		t.Fatalf("get: %v", err)
	}

	got := lines(out)
	wantLen := 8 + 10*3 + 2*3 + 1
	if len(got) != wantLen {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), wantLen, out.String())
	}

	head := []string{
		"GET version=" + types.FirmwareVersion,
		"GET hkeys=3",
		"GET dkeys=3",
		"GET name=pad",
		"GET htol=10",
		"GET rtol=10",
		"GET trdt=400",
		"GET ares=12",
	}
	for i, want := range head {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}

	key1 := []string{
		"GET hkey1.rt=0",
		"GET hkey1.crt=0",
		"GET hkey1.rtus=50",
		"GET hkey1.rtds=50",
		"GET hkey1.lh=250",
		"GET hkey1.uh=300",
		"GET hkey1.char=120", // 'x'
		"GET hkey1.rest=4000",
		"GET hkey1.down=1000",
		"GET hkey1.hid=0",
	}
	for i, want := range key1 {
		if got[8+i] != want {
			t.Errorf("line %d = %q, want %q", 8+i, got[8+i], want)
		}
	}

	if got[8+30] != "GET dkey1.char=97" || got[8+30+1] != "GET dkey1.hid=1" {
		t.Errorf("digital block starts %q %q", got[8+30], got[8+30+1])
	}
	if got[len(got)-1] != "GET END" {
		t.Errorf("last line = %q, want GET END", got[len(got)-1])
	}
}

func TestGetIsDeterministic(t *testing.T) {
	cfg := testConfig()
	d, _, _, out := testDispatcher(cfg)
	_ = d.HandleLine("get")
	first := out.String()
	out.Reset()
	_ = d.HandleLine("get")
	if out.String() != first {
		t.Error("two get runs over an unchanged config differ")
	}
}

func TestNameCommand(t *testing.T) {
	cfg := testConfig()
	d, _, _, out := testDispatcher(cfg)

	if err := d.HandleLine("name alice"); err != nil {
		t.Fatalf("name alice: %v", err)
	}
	out.Reset()
	_ = d.HandleLine("get")
	if !strings.Contains(out.String(), "GET name=alice\n") {
		t.Error("get does not reflect the new name")
	}

	// Boundary: 0 and 129 rejected, 1 and 128 accepted.
	if err := d.HandleLine("name"); err != errcode.NameLength {
		t.Errorf("empty name: err = %v", err)
	}
	if cfg.Name != "alice" {
		t.Errorf("rejected name overwrote state: %q", cfg.Name)
	}
	if err := d.HandleLine("name " + strings.Repeat("x", 129)); err != errcode.NameLength {
		t.Errorf("129-byte name: err = %v", err)
	}
	if err := d.HandleLine("name " + strings.Repeat("x", 128)); err != nil {
		t.Errorf("128-byte name: err = %v", err)
	}
	if err := d.HandleLine("name y"); err != nil {
		t.Errorf("1-byte name: err = %v", err)
	}
	if cfg.Name != "y" {
		t.Errorf("name = %q, want y", cfg.Name)
	}
}

func TestSingleKeyMutation(t *testing.T) {
	cfg := testConfig()
	d, _, _, _ := testDispatcher(cfg)

	if err := d.HandleLine("hkey2.lh 260"); err != nil {
		t.Fatalf("hkey2.lh 260: %v", err)
	}
	if cfg.AnalogKeys[1].LowerHysteresis != 260 {
		t.Errorf("key 2 lh = %d, want 260", cfg.AnalogKeys[1].LowerHysteresis)
	}
	if cfg.AnalogKeys[0].LowerHysteresis != 250 || cfg.AnalogKeys[2].LowerHysteresis != 250 {
		t.Error("single-key command touched other keys")
	}

	// Rejected value leaves prior state.
	if err := d.HandleLine("hkey2.lh 295"); err == nil {
		t.Error("expected reject: band narrower than tolerance")
	}
	if cfg.AnalogKeys[1].LowerHysteresis != 260 {
		t.Errorf("key 2 lh = %d after reject, want 260", cfg.AnalogKeys[1].LowerHysteresis)
	}

	if err := d.HandleLine("dkey3.char a"); err != nil {
		t.Fatalf("dkey3.char a: %v", err)
	}
	if cfg.DigitalKeys[2].KeyChar != 'a' {
		t.Errorf("dkey3 char = %d, want 'a'", cfg.DigitalKeys[2].KeyChar)
	}
}

func TestBatchIndependence(t *testing.T) {
	cfg := testConfig()
	cfg.AnalogKeys[0].DownPosition = 1000
	cfg.AnalogKeys[1].DownPosition = 2000
	cfg.AnalogKeys[2].DownPosition = 1000
	d, _, _, _ := testDispatcher(cfg)

	// 1500 exceeds only the down positions of keys 1 and 3.
	if err := d.HandleLine("hkey.rest 1500"); err != nil {
		t.Fatalf("hkey.rest 1500: %v", err)
	}
	if cfg.AnalogKeys[0].RestPosition != 1500 {
		t.Errorf("key 1 rest = %d, want 1500", cfg.AnalogKeys[0].RestPosition)
	}
	if cfg.AnalogKeys[1].RestPosition != 4000 {
		t.Errorf("key 2 rest = %d, want unchanged 4000", cfg.AnalogKeys[1].RestPosition)
	}
	if cfg.AnalogKeys[2].RestPosition != 1500 {
		t.Errorf("key 3 rest = %d, want 1500", cfg.AnalogKeys[2].RestPosition)
	}
}

func TestBatchAppliesToAllDigital(t *testing.T) {
	cfg := testConfig()
	d, _, _, _ := testDispatcher(cfg)
	if err := d.HandleLine("dkey.hid 0"); err != nil {
		t.Fatalf("dkey.hid 0: %v", err)
	}
	for i := range cfg.DigitalKeys {
		if cfg.DigitalKeys[i].HIDEnabled {
			t.Errorf("dkey%d hid still enabled", i+1)
		}
	}
}

func TestOutSnapshot(t *testing.T) {
	d, _, _, out := testDispatcher(testConfig())
	if err := d.HandleLine("out"); err != nil {
		t.Fatalf("out: %v", err)
	}
	got := lines(out)
	want := []string{
		"OUT hkey1=3900 10",
		"OUT hkey2=2500 200",
		"OUT hkey3=1100 390",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOutToggle(t *testing.T) {
	d, kp, _, out := testDispatcher(testConfig())
	if err := d.HandleLine("out 1"); err != nil {
		t.Fatalf("out 1: %v", err)
	}
	if !kp.streaming || kp.setCalls != 1 {
		t.Errorf("streaming=%v calls=%d", kp.streaming, kp.setCalls)
	}
	if out.Len() != 0 {
		t.Errorf("toggle emitted output: %q", out.String())
	}
	_ = d.HandleLine("out false")
	if kp.streaming {
		t.Error("out false left streaming on")
	}
}

func TestSaveDelegates(t *testing.T) {
	cfg := testConfig()
	d, _, sv, out := testDispatcher(cfg)
	if err := d.HandleLine("save"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if sv.calls != 1 || sv.last != cfg {
		t.Errorf("saver calls=%d last=%p want cfg=%p", sv.calls, sv.last, cfg)
	}
	if out.Len() != 0 {
		t.Errorf("save emitted output: %q", out.String())
	}
}

func TestBootDelegates(t *testing.T) {
	called := 0
	var out bytes.Buffer
	d := New(testConfig(), nil, nil, func() { called++ }, &out)
	if err := d.HandleLine("boot"); err != nil {
		t.Fatalf("boot: %v", err)
	}
	if called != 1 {
		t.Errorf("bootloader called %d times", called)
	}
}

func TestUnknownCommandIsSilentlyIgnored(t *testing.T) {
	cfg := testConfig()
	want := *cfg
	wantAnalog := append([]types.AnalogKey(nil), cfg.AnalogKeys...)
	d, kp, sv, out := testDispatcher(cfg)

	if err := d.HandleLine("unknowncmd 1"); err != errcode.UnknownCommand {
		t.Errorf("err = %v, want %v", err, errcode.UnknownCommand)
	}
	if out.Len() != 0 {
		t.Errorf("unknown command produced output: %q", out.String())
	}
	if cfg.Name != want.Name {
		t.Error("unknown command changed state")
	}
	for i := range wantAnalog {
		if cfg.AnalogKeys[i] != wantAnalog[i] {
			t.Errorf("key %d changed", i+1)
		}
	}
	if kp.setCalls != 0 || sv.calls != 0 {
		t.Error("unknown command reached a collaborator")
	}
}

func TestDebugCommandTable(t *testing.T) {
	// Release table: echo ignored.
	d, _, _, out := testDispatcher(testConfig())
	if err := d.HandleLine("echo hello"); err != errcode.UnknownCommand {
		t.Errorf("release echo: err = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("release echo produced output: %q", out.String())
	}

	// Debug table: echo reflects the tail, version reports -dev.
	d, _, _, out = testDispatcher(testConfig(), WithDebug())
	if err := d.HandleLine("echo hello there"); err != nil {
		t.Fatalf("debug echo: %v", err)
	}
	if out.String() != "hello there\n" {
		t.Errorf("echo output = %q", out.String())
	}
	out.Reset()
	_ = d.HandleLine("get")
	if !strings.HasPrefix(out.String(), "GET version="+types.FirmwareVersion+"-dev\n") {
		t.Errorf("debug get version line wrong: %q", lines(out)[0])
	}
}

func TestKeyAddressDropBeforeValidation(t *testing.T) {
	cfg := testConfig()
	d, _, _, _ := testDispatcher(cfg)
	if err := d.HandleLine("hkey4.rt 1"); err != errcode.KeyOutOfRange {
		t.Errorf("err = %v", err)
	}
	for i := range cfg.AnalogKeys {
		if cfg.AnalogKeys[i].RapidTrigger {
			t.Errorf("out-of-range address mutated key %d", i+1)
		}
	}
}

func TestHugeKeyIndexDropsWholeLine(t *testing.T) {
	// Indices past the int range, and values that wrap past 2^64, must
	// drop the line without touching any key (and without panicking on
	// a negative slice index).
	cfg := testConfig()
	d, _, _, out := testDispatcher(cfg)
	cases := []struct {
		raw  string
		want error
	}{
		{"hkey9223372036854775808.rt 1", errcode.KeyOutOfRange},
		{"hkey18446744073709551615.rt 1", errcode.KeyOutOfRange},
		{"hkey18446744073709551618.rt 1", errcode.BadAddress}, // would wrap to key 2
	}
	for _, c := range cases {
		if err := d.HandleLine(c.raw); err != c.want {
			t.Errorf("HandleLine(%q) err = %v, want %v", c.raw, err, c.want)
		}
	}
	for i := range cfg.AnalogKeys {
		if cfg.AnalogKeys[i].RapidTrigger {
			t.Errorf("huge index mutated key %d", i+1)
		}
	}
	if out.Len() != 0 {
		t.Errorf("dropped lines produced output: %q", out.String())
	}
}
