/*
Package trainer contains the playback engine and the screens of the sightread
trainer.

The Engine holds the playback position within a sightread.Score and advances it
one frame at a time. Whenever a note boundary is crossed it stops and starts
notes through a sightread.NoteTrigger and reports the transition through a Hooks
callback table, so that each mode can react to the transition without the
engine knowing about the mode. The Engine also owns the Projection of the
currently visible page of bars, i.e. where every note glyph is drawn and in
which colour.

The modes (Training, Game, Piano) are built by composing an Engine with an
input source. Game mode reconciles the expected and the held pitches every frame
with Reconcile and feeds the result to a Judge, which gates the advancing of
time until the required chord is held. A finished game session is graded with
Grade.

All screens implement Mode and are stacked in a Navigator. The host (see
package trainer/ebiten) calls Navigator.AdvanceFrame once per frame and draws the
topmost screen through a Canvas. When a screen quits, it is popped and its
SessionResult, if any, is handed to the screen below.
*/
package trainer
