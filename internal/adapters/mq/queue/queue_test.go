package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	Convey("Given a queue with capacity 2", t, func() {
		q := NewInMemoryQueue(WithCapacity(2))
		ctx := context.Background()

		Convey("When enqueuing two jobs", func() {
			So(q.Enqueue(ctx, Job{Team: "Arsenal"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Job{Team: "Chelsea"}), ShouldBeTrue)

			Convey("Then the third is rejected", func() {
				So(q.Len(), ShouldEqual, 2)
				So(q.Enqueue(ctx, Job{Team: "Everton"}), ShouldBeFalse)
			})

			Convey("Then jobs come out in order", func() {
				dctx, cancel := context.WithCancel(ctx)
				defer cancel()
				ch := q.Dequeue(dctx)
				So((<-ch).Team, ShouldEqual, "Arsenal")
				So((<-ch).Team, ShouldEqual, "Chelsea")
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			Convey("Then enqueue fails", func() {
				So(q.Enqueue(cctx, Job{Team: "Arsenal"}), ShouldBeFalse)
				So(q.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestInMemoryQueue_EnqueueAll(t *testing.T) {
	Convey("Given a small queue", t, func() {
		q := NewInMemoryQueue(WithCapacity(2))
		ctx := context.Background()

		Convey("When more teams than capacity are enqueued", func() {
			err := q.EnqueueAll(ctx, []string{"Arsenal", "Chelsea", "Everton"})

			Convey("Then it reports ErrFull", func() {
				So(errors.Is(err, ErrFull), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "2 of 3")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then it reports ErrClosed", func() {
				So(q.EnqueueAll(ctx, []string{"Arsenal"}), ShouldEqual, ErrClosed)
			})
		})
	})
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	Convey("Given many producers and one consumer", t, func() {
		q := NewInMemoryQueue(WithCapacity(1000))
		ctx := context.Background()

		var wg sync.WaitGroup
		for p := 0; p < 10; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					q.Enqueue(ctx, Job{Team: "Arsenal"})
				}
			}()
		}
		wg.Wait()
		So(q.Close(), ShouldBeNil)

		Convey("Then every job is delivered exactly once", func() {
			n := 0
			for range q.Dequeue(ctx) {
				n++
			}
			So(n, ShouldEqual, 500)
		})
	})
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	Convey("Given a queue holding jobs", t, func() {
		q := NewInMemoryQueue(WithCapacity(4))
		ctx := context.Background()
		So(q.Enqueue(ctx, Job{Team: "Arsenal"}), ShouldBeTrue)
		So(q.Enqueue(ctx, Job{Team: "Chelsea"}), ShouldBeTrue)

		Convey("When it is closed", func() {
			So(q.Close(), ShouldBeNil)
			So(q.Close(), ShouldBeNil)

			Convey("Then buffered jobs still drain and the channel closes", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, Job{Team: "Everton"}), ShouldBeFalse)

				var got []string
				done := make(chan struct{})
				go func() {
					defer close(done)
					for j := range q.Dequeue(ctx) {
						got = append(got, j.Team)
					}
				}()
				select {
				case <-done:
				case <-time.After(time.Second):
				}
				So(got, ShouldResemble, []string{"Arsenal", "Chelsea"})
			})
		})
	})
}
