package mousegrab

import "testing"

type fakeCursor struct {
	image  string
	locked bool
}

func (c *fakeCursor) CurrentImage() string            { return c.image }
func (c *fakeCursor) SetImage(name string)            { c.image = name }
func (c *fakeCursor) SetSoftwareCursorsLocked(l bool) { c.locked = l }

type fakeClient struct {
	moved  []int32
	button []int32
}

func (c *fakeClient) SendMouseMoved(x, y int32) { c.moved = []int32{x, y} }
func (c *fakeClient) SendMouseButton(x, y int32, pressed bool, button uint32) {
	c.button = []int32{x, y}
}

func TestGrabAndReleaseRestoresImage(t *testing.T) {
	cursor := &fakeCursor{image: "text"}
	s := New(cursor)
	client := &fakeClient{}

	if err := s.Grab(client, "watch"); err != nil {
		t.Fatalf("Grab: %v", err)
	}
	if cursor.image != "watch" || !cursor.locked {
		t.Fatalf("cursor state after grab = %+v", cursor)
	}

	other := &fakeClient{}
	if err := s.Grab(other, "anything"); err != ErrAlreadyGrabbed {
		t.Fatalf("second grab error = %v, want ErrAlreadyGrabbed", err)
	}

	if err := s.Release(other); err != ErrNotGrabbed {
		t.Fatalf("wrong-caller release error = %v, want ErrNotGrabbed", err)
	}

	if err := s.Release(client); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if cursor.image != "text" || cursor.locked {
		t.Fatalf("cursor state after release = %+v, want restored to text/unlocked", cursor)
	}
}

func TestNotifyMotionOnlyReachesGrabber(t *testing.T) {
	cursor := &fakeCursor{image: "default"}
	s := New(cursor)
	client := &fakeClient{}

	s.NotifyMotion(5, 6)
	if client.moved != nil {
		t.Fatalf("expected no delivery before grab")
	}

	_ = s.Grab(client, "watch")
	s.NotifyMotion(10, 20)
	if client.moved[0] != 10 || client.moved[1] != 20 {
		t.Fatalf("moved = %v, want [10 20]", client.moved)
	}
}
