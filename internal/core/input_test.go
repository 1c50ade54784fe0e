package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionFire) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionFire)
	f.Set(ActionCycle)
	if !f.Has(ActionFire) || !f.Has(ActionCycle) {
		t.Error("set actions should read back as triggered")
	}
	if f.Has(ActionQuit) {
		t.Error("unset action should not read as triggered")
	}

	f.Clear()
	if f.Has(ActionFire) {
		t.Error("Clear should drop all actions")
	}
}

func TestInputFrameAxes(t *testing.T) {
	f := NewInputFrame()

	if f.Axis(AxisYaw) != 0 {
		t.Error("unset axis should read 0")
	}

	f.SetAxis(AxisYaw, 0.5)
	f.SetAxis(AxisPitch, -2.0) // out of range, must clamp
	if f.Axis(AxisYaw) != 0.5 {
		t.Errorf("AxisYaw = %v, expected 0.5", f.Axis(AxisYaw))
	}
	if f.Axis(AxisPitch) != -1.0 {
		t.Errorf("AxisPitch = %v, expected clamp to -1.0", f.Axis(AxisPitch))
	}

	f.Clear()
	if f.Axis(AxisYaw) != 0 {
		t.Error("Clear should recenter axes")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	// The zero value must be safe to read and write.
	var f InputFrame

	if f.Has(ActionFire) || f.Axis(AxisYaw) != 0 {
		t.Error("zero frame should read as empty")
	}

	f.Set(ActionPause)
	f.SetAxis(AxisPitch, 1)
	if !f.Has(ActionPause) || f.Axis(AxisPitch) != 1 {
		t.Error("zero frame should accept writes")
	}
}
