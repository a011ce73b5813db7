package core

import "testing"

func TestSplitVideoSection(t *testing.T) {
	store := newLoadedStore(t)
	tailID, ok := store.SplitVideoSection("sec-1", 50)
	if !ok || tailID == "" {
		t.Fatalf("expected successful split, got ok=%v id=%q", ok, tailID)
	}
	head, _ := store.FindVideoSection("sec-1")
	if head.StartFrame != 0 || head.EndFrame != 49 {
		t.Fatalf("head range = [%d,%d], want [0,49]", head.StartFrame, head.EndFrame)
	}
	tail, ok := store.FindVideoSection(tailID)
	if !ok {
		t.Fatalf("tail section missing")
	}
	if tail.StartFrame != 51 || tail.EndFrame != 100 {
		t.Fatalf("tail range = [%d,%d], want [51,100]", tail.StartFrame, tail.EndFrame)
	}
	if tail.VideoID != "vid-1" {
		t.Fatalf("tail must belong to the same video, got %q", tail.VideoID)
	}
	video, _ := store.FindVideo("vid-1")
	if !containsString(video.SectionIDs, tailID) {
		t.Fatalf("tail id missing from video sections: %+v", video.SectionIDs)
	}
}

func TestSplitVideoSectionRejectsBoundaryFrames(t *testing.T) {
	store := newLoadedStore(t)
	store.ClearChanges()
	for _, frame := range []int{0, 100, -5, 300} {
		if id, ok := store.SplitVideoSection("sec-1", frame); ok || id != "" {
			t.Fatalf("split at frame %d must fail, got id=%q", frame, id)
		}
	}
	sec, _ := store.FindVideoSection("sec-1")
	if sec.StartFrame != 0 || sec.EndFrame != 100 {
		t.Fatalf("failed split must not mutate the section: %+v", sec)
	}
	if store.HasChanges() {
		t.Fatalf("failed split must not mark changes")
	}
}

func TestSplitVideoSectionUnknownID(t *testing.T) {
	store := newLoadedStore(t)
	if id, ok := store.SplitVideoSection("ghost", 10); ok || id != "" {
		t.Fatalf("split of unknown section must fail")
	}
}

func TestDeleteVideoSectionCascadesAttachments(t *testing.T) {
	store := newLoadedStore(t)
	store.DeleteVideoSection("sec-1")
	if _, ok := store.FindVideoSection("sec-1"); ok {
		t.Fatalf("section still present after delete")
	}
	if _, ok := store.FindSubstepVideoSection("svs-1"); ok {
		t.Fatalf("substep attachments of a deleted section must cascade")
	}
	video, _ := store.FindVideo("vid-1")
	if containsString(video.SectionIDs, "sec-1") {
		t.Fatalf("deleted section id must leave the video array: %+v", video.SectionIDs)
	}
	sub, _ := store.FindSubstep("sub-1")
	if containsString(sub.VideoSectionIDs, "svs-1") {
		t.Fatalf("cascaded attachment id must leave the substep array: %+v", sub.VideoSectionIDs)
	}
}

func TestDeleteVideoFrameAreaCascadesLinks(t *testing.T) {
	store := newLoadedStore(t)
	store.DeleteVideoFrameArea("fa-1")
	if _, ok := store.FindVideoFrameArea("fa-1"); ok {
		t.Fatalf("frame area still present after delete")
	}
	if _, ok := store.FindPartToolFrameArea("link-1"); ok {
		t.Fatalf("part tool links of a deleted frame area must cascade")
	}
	if _, ok := store.FindSubstepPartTool("spt-1"); !ok {
		t.Fatalf("the part tool usage row itself must survive")
	}
}

func TestFrameZeroKeyframeIsProtected(t *testing.T) {
	store := newLoadedStore(t)
	store.ClearChanges()
	store.DeleteViewportKeyframe("kf-0")
	if _, ok := store.FindViewportKeyframe("kf-0"); !ok {
		t.Fatalf("frame-zero keyframe must never be deletable")
	}
	if store.HasChanges() {
		t.Fatalf("refused keyframe delete must not mark changes")
	}
	store.DeleteViewportKeyframe("kf-50")
	if _, ok := store.FindViewportKeyframe("kf-50"); ok {
		t.Fatalf("non-zero keyframe must be deletable")
	}
	video, _ := store.FindVideo("vid-1")
	if containsString(video.ViewportKeyframeIDs, "kf-50") {
		t.Fatalf("deleted keyframe id must leave the video array: %+v", video.ViewportKeyframeIDs)
	}
}

func TestDeleteVideoCascadesEverything(t *testing.T) {
	store := newLoadedStore(t)
	store.DeleteVideo("vid-1")
	if _, ok := store.FindVideo("vid-1"); ok {
		t.Fatalf("video still present after delete")
	}
	if _, ok := store.FindVideoSection("sec-1"); ok {
		t.Fatalf("sections must cascade with the video")
	}
	if _, ok := store.FindVideoFrameArea("fa-1"); ok {
		t.Fatalf("frame areas must cascade with the video")
	}
	// Video deletion removes even the protected frame-zero keyframe.
	if _, ok := store.FindViewportKeyframe("kf-0"); ok {
		t.Fatalf("keyframes must cascade with the video")
	}
	if _, ok := store.FindViewportKeyframe("kf-50"); ok {
		t.Fatalf("keyframes must cascade with the video")
	}
	if _, ok := store.FindSubstepVideoSection("svs-1"); ok {
		t.Fatalf("substep attachments must cascade transitively")
	}
	if _, ok := store.FindPartToolFrameArea("link-1"); ok {
		t.Fatalf("frame area links must cascade transitively")
	}
	if _, ok := store.FindSubstep("sub-1"); !ok {
		t.Fatalf("substeps must survive video deletion")
	}
}

func TestAddVideoSectionAppendsToVideo(t *testing.T) {
	store := newLoadedStore(t)
	created := store.AddVideoSection(VideoSection{VideoID: "vid-1", Name: "Sand", StartFrame: 101, EndFrame: 150})
	video, _ := store.FindVideo("vid-1")
	if !containsString(video.SectionIDs, created.ID) {
		t.Fatalf("new section id missing from video: %+v", video.SectionIDs)
	}
}
