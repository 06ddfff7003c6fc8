package dialogue_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pubfindco/pubfind/pkg/dialogue"
)

var _ = Describe("Log", func() {
	var log *dialogue.Log

	BeforeEach(func() {
		log = dialogue.NewLog()
	})

	Describe("Append", func() {
		It("appends valid turns in order", func() {
			Expect(log.Append(dialogue.Turn{Role: dialogue.RoleUser, Content: "Find Zoe Khan"})).To(Succeed())
			Expect(log.Append(dialogue.Turn{Role: dialogue.RoleAssistant, Content: "I found 2 records."})).To(Succeed())

			turns := log.Snapshot()
			Expect(turns).To(HaveLen(2))
			Expect(turns[0].Role).To(Equal("user"))
			Expect(turns[0].Content).To(Equal("Find Zoe Khan"))
			Expect(turns[1].Role).To(Equal("assistant"))
		})

		It("rejects a turn with no role", func() {
			err := log.Append(dialogue.Turn{Content: "hello"})
			Expect(err).To(MatchError(dialogue.ErrInvalidTurn))
			Expect(log.Len()).To(Equal(0))
		})

		It("rejects a turn with no content", func() {
			err := log.Append(dialogue.Turn{Role: dialogue.RoleUser})
			Expect(err).To(MatchError(dialogue.ErrInvalidTurn))
			Expect(log.Len()).To(Equal(0))
		})
	})

	Describe("Snapshot", func() {
		It("returns an empty slice for a fresh log", func() {
			Expect(log.Snapshot()).To(BeEmpty())
		})

		It("returns a copy that does not alias the log", func() {
			Expect(log.Append(dialogue.Turn{Role: dialogue.RoleUser, Content: "hi"})).To(Succeed())

			snap := log.Snapshot()
			snap[0].Content = "mutated"

			Expect(log.Snapshot()[0].Content).To(Equal("hi"))
		})

		It("always returns the full history", func() {
			for i := 0; i < 5; i++ {
				Expect(log.Append(dialogue.Turn{Role: dialogue.RoleUser, Content: fmt.Sprintf("q%d", i)})).To(Succeed())
				Expect(log.Append(dialogue.Turn{Role: dialogue.RoleAssistant, Content: fmt.Sprintf("a%d", i)})).To(Succeed())
			}

			turns := log.Snapshot()
			Expect(turns).To(HaveLen(10))
			for i, t := range turns {
				if i%2 == 0 {
					Expect(t.Role).To(Equal("user"))
				} else {
					Expect(t.Role).To(Equal("assistant"))
				}
			}
		})
	})

	Describe("concurrent use", func() {
		It("does not lose appends under contention", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					_ = log.Append(dialogue.Turn{Role: dialogue.RoleUser, Content: fmt.Sprintf("turn-%d", n)})
				}(i)
			}
			wg.Wait()

			Expect(log.Len()).To(Equal(20))
		})
	})
})
