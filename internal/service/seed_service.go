package service

import (
	"fmt"
	"time"

	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// SeedService loads the CS101 demo exams. Development fixture only; the
// handler is registered like any other instructor route.
type SeedService interface {
	SeedExams() (*dto.SeedResultDTO, error)
}

type seedService struct {
	examRepo repository.ExamRepository
}

func NewSeedService(examRepo repository.ExamRepository) SeedService {
	return &seedService{examRepo: examRepo}
}

const seedCourseID = "384a3fe5-8d6c-4f51-a278-8271d982e01c"

func (s *seedService) SeedExams() (*dto.SeedResultDTO, error) {
	midterm := midtermFixture()
	if err := s.examRepo.Create(midterm); err != nil {
		return nil, fmt.Errorf("seeding midterm exam: %w", err)
	}

	final := finalFixture()
	if err := s.examRepo.Create(final); err != nil {
		return nil, fmt.Errorf("seeding final exam: %w", err)
	}

	log.Info().Str("midtermID", midterm.ID.String()).Str("finalID", final.ID.String()).Msg("Seeded demo exams")
	return &dto.SeedResultDTO{
		Message: "Exams seeded successfully",
		Exams: []dto.SeedExamSummary{
			{ID: midterm.ID, Title: midterm.Title, QuestionCount: len(midterm.Questions)},
			{ID: final.ID, Title: final.Title, QuestionCount: len(final.Questions)},
		},
	}, nil
}

func rawJSON(s string) datatypes.JSON { return datatypes.JSON([]byte(s)) }

func midtermFixture() *model.Exam {
	return &model.Exam{
		Title:        "CS101 Midterm Exam - Algorithms & Data Structures",
		Description:  "Comprehensive midterm covering Foundations of Algorithms and Introduction to Data Structures",
		CourseID:     seedCourseID,
		Duration:     90,
		TotalMarks:   100,
		PassingMarks: 60,
		StartTime:    time.Date(2025, 2, 15, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, 2, 15, 23, 59, 0, 0, time.UTC),
		Questions: []model.Question{
			{
				Type:  model.QuestionMultipleChoice,
				Text:  "What is the time complexity of Binary Search in the worst case?",
				Marks: 5,
				Options: rawJSON(`[{"id":"a","text":"O(n)"},{"id":"b","text":"O(log n)"},` +
					`{"id":"c","text":"O(n²)"},{"id":"d","text":"O(1)"}]`),
				CorrectOptions: []string{"b"},
				Explanation:    "Binary Search divides the search space in half with each iteration, resulting in logarithmic time complexity O(log n).",
			},
			{
				Type:  model.QuestionMultipleChoice,
				Text:  "Which data structure follows the LIFO (Last In First Out) principle?",
				Marks: 5,
				Options: rawJSON(`[{"id":"a","text":"Queue"},{"id":"b","text":"Stack"},` +
					`{"id":"c","text":"Array"},{"id":"d","text":"Linked List"}]`),
				CorrectOptions: []string{"b"},
				Explanation:    "A Stack follows LIFO principle where the last element added is the first one to be removed.",
			},
			{
				Type:  model.QuestionMultipleChoice,
				Text:  "What is the main advantage of a Linked List over an Array?",
				Marks: 5,
				Options: rawJSON(`[{"id":"a","text":"Faster access to elements"},{"id":"b","text":"Better memory utilization"},` +
					`{"id":"c","text":"Dynamic size and efficient insertion/deletion"},{"id":"d","text":"Cache-friendly"}]`),
				CorrectOptions: []string{"c"},
				Explanation:    "Linked Lists allow dynamic sizing and efficient O(1) insertion/deletion at known positions without shifting elements.",
			},
			{
				Type:  model.QuestionMultiSelect,
				Text:  "Which of the following are key characteristics of an algorithm? (Select all that apply)",
				Marks: 10,
				Options: rawJSON(`[{"id":"a","text":"Correctness"},{"id":"b","text":"Randomness"},` +
					`{"id":"c","text":"Definiteness"},{"id":"d","text":"Finiteness"},{"id":"e","text":"Ambiguity"}]`),
				CorrectOptions: []string{"a", "c", "d"},
				Explanation:    "Algorithms must be correct, definite (unambiguous), and finite (must terminate). Randomness and ambiguity are not required characteristics.",
				PartialCredit:  true,
			},
			{
				Type:  model.QuestionMultiSelect,
				Text:  "Which sorting algorithms have an average time complexity of O(n log n)? (Select all that apply)",
				Marks: 10,
				Options: rawJSON(`[{"id":"a","text":"Bubble Sort"},{"id":"b","text":"Merge Sort"},` +
					`{"id":"c","text":"Quick Sort"},{"id":"d","text":"Selection Sort"},{"id":"e","text":"Heap Sort"}]`),
				CorrectOptions: []string{"b", "c", "e"},
				Explanation:    "Merge Sort, Quick Sort (average case), and Heap Sort all have O(n log n) time complexity. Bubble Sort and Selection Sort are O(n²).",
				PartialCredit:  true,
			},
			{
				Type:           model.QuestionTrueFalse,
				Text:           "Hash tables provide O(1) average time complexity for search operations.",
				Marks:          5,
				Options:        rawJSON(`[{"id":"true","text":"True"},{"id":"false","text":"False"}]`),
				CorrectOptions: []string{"true"},
				Explanation:    "Hash tables provide constant time O(1) average case lookup due to direct addressing via hash function.",
			},
			{
				Type:           model.QuestionTrueFalse,
				Text:           "Arrays have better insertion performance than Linked Lists at arbitrary positions.",
				Marks:          5,
				Options:        rawJSON(`[{"id":"true","text":"True"},{"id":"false","text":"False"}]`),
				CorrectOptions: []string{"false"},
				Explanation:    "Arrays require O(n) time for insertion at arbitrary positions due to shifting elements, while Linked Lists can insert in O(1) given a reference to the position.",
			},
			{
				Type:          model.QuestionFillInBlank,
				Text:          "The notation used to describe the upper bound of an algorithm's time complexity is called _____ notation.",
				Marks:         5,
				CorrectAnswer: rawJSON(`{"acceptedAnswers":["Big O","Big-O","O"]}`),
				Explanation:   "Big O notation is used to describe the worst-case or upper bound time complexity of algorithms.",
			},
			{
				Type:          model.QuestionFillInBlank,
				Text:          "A Queue follows the _____ principle.",
				Marks:         5,
				CorrectAnswer: rawJSON(`{"acceptedAnswers":["FIFO","First In First Out","First-In-First-Out"]}`),
				Explanation:   "Queue follows First In First Out (FIFO) principle where the first element added is the first to be removed.",
			},
			{
				Type:  model.QuestionMatching,
				Text:  "Match each data structure with its primary use case:",
				Marks: 10,
				Options: rawJSON(`{"left":[{"id":"1","text":"Stack"},{"id":"2","text":"Queue"},` +
					`{"id":"3","text":"Hash Table"},{"id":"4","text":"Binary Tree"}],` +
					`"right":[{"id":"a","text":"Fast key-value lookups"},{"id":"b","text":"Function call management"},` +
					`{"id":"c","text":"Task scheduling"},{"id":"d","text":"Hierarchical data representation"}]}`),
				CorrectAnswer: rawJSON(`{"matches":[{"left":"1","right":"b"},{"left":"2","right":"c"},` +
					`{"left":"3","right":"a"},{"left":"4","right":"d"}]}`),
				Explanation:   "Stack: function calls (LIFO), Queue: task scheduling (FIFO), Hash Table: fast lookups, Binary Tree: hierarchical data.",
				PartialCredit: true,
			},
			{
				Type:  model.QuestionOrdering,
				Text:  "Arrange the following time complexities from most efficient to least efficient:",
				Marks: 10,
				Options: rawJSON(`{"items":[{"id":"1","text":"O(n²)"},{"id":"2","text":"O(1)"},` +
					`{"id":"3","text":"O(n)"},{"id":"4","text":"O(log n)"},{"id":"5","text":"O(n log n)"}]}`),
				CorrectAnswer: rawJSON(`{"order":["2","4","3","5","1"]}`),
				Explanation:   "From most to least efficient: O(1) < O(log n) < O(n) < O(n log n) < O(n²)",
				PartialCredit: true,
			},
			{
				Type:          model.QuestionShortAnswer,
				Text:          "Explain the difference between Bubble Sort and Merge Sort in terms of efficiency. (50-100 words)",
				Marks:         10,
				Explanation:   "Bubble Sort has O(n²) time complexity in average and worst cases. Merge Sort has O(n log n) in all cases and uses a divide-and-conquer strategy.",
				PartialCredit: true,
			},
			{
				Type:          model.QuestionEssay,
				Text:          "Discuss the trade-offs between different data structures (Arrays, Linked Lists, and Hash Tables) when choosing one for a real-world application. Consider access time, insertion/deletion efficiency, memory usage, and cache performance, with example scenarios for each. (200-300 words)",
				Marks:         15,
				Explanation:   "Arrays offer O(1) access but O(n) insertion/deletion; Linked Lists the reverse; Hash Tables O(1) average lookup at higher memory cost. Cache locality favors arrays.",
				PartialCredit: true,
			},
		},
	}
}

func finalFixture() *model.Exam {
	return &model.Exam{
		Title:        "CS101 Final Exam - Comprehensive Assessment",
		Description:  "Final exam covering all course topics including algorithms, data structures, and problem-solving",
		CourseID:     seedCourseID,
		Duration:     120,
		TotalMarks:   150,
		PassingMarks: 90,
		StartTime:    time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, 3, 20, 23, 59, 0, 0, time.UTC),
		Questions: []model.Question{
			{
				Type:  model.QuestionMultipleChoice,
				Text:  "Which of the following best describes algorithmic efficiency?",
				Marks: 5,
				Options: rawJSON(`[{"id":"a","text":"The number of lines of code"},` +
					`{"id":"b","text":"How well it uses time and memory resources"},` +
					`{"id":"c","text":"The programming language used"},{"id":"d","text":"The developer's skill level"}]`),
				CorrectOptions: []string{"b"},
				Explanation:    "Efficiency refers to how well an algorithm uses computational resources, primarily time and memory.",
			},
			{
				Type:  model.QuestionMultiSelect,
				Text:  "Which operations are typically O(1) in a well-implemented Hash Table? (Select all that apply)",
				Marks: 10,
				Options: rawJSON(`[{"id":"a","text":"Insert"},{"id":"b","text":"Search"},` +
					`{"id":"c","text":"Delete"},{"id":"d","text":"Sort"}]`),
				CorrectOptions: []string{"a", "b", "c"},
				Explanation:    "Hash tables provide O(1) average time for insert, search, and delete operations. Sorting is not a typical hash table operation.",
				PartialCredit:  true,
			},
			{
				Type:          model.QuestionEssay,
				Text:          "Design and explain an algorithm to solve a real-world problem of your choice. Include: problem description, algorithm steps, time/space complexity analysis, and potential optimizations. (300-400 words)",
				Marks:         25,
				Explanation:   "Should include clear problem definition, step-by-step algorithm, complexity analysis using Big O notation, and discussion of optimization strategies.",
				PartialCredit: true,
			},
		},
	}
}
