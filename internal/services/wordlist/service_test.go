package wordlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/storage/memory"
	"github.com/mcoot/wordsearch/internal/testutil"
)

type WordListSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestWordListSuite(t *testing.T) {
	suite.Run(t, new(WordListSuite))
}

func (s *WordListSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *WordListSuite) writeFile(name, content string) string {
	path := filepath.Join(s.T().TempDir(), name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *WordListSuite) TestLoadWordsNormalizes() {
	err := s.service.LoadWords([]string{" haus ", "Baum", "HAUS", "käse", "two words", "x-ray", ""})
	s.Require().NoError(err)

	words, err := s.service.Words(12)
	s.Require().NoError(err)
	s.Equal([]string{"HAUS", "BAUM", "KÄSE"}, words)
}

func (s *WordListSuite) TestWordsFiltersByLength() {
	s.Require().NoError(s.service.LoadWords([]string{"ÖL", "HAUS", "SCHMETTERLING"}))

	words, err := s.service.Words(4)
	s.Require().NoError(err)
	s.Equal([]string{"ÖL", "HAUS"}, words)

	_, err = s.service.Words(1)
	s.ErrorIs(err, model.ErrEmptyWordList)
}

func (s *WordListSuite) TestWordsBeforeLoad() {
	_, err := s.service.Words(12)
	s.ErrorIs(err, model.ErrWordListNotLoaded)
	s.False(s.service.IsLoaded())
}

func (s *WordListSuite) TestLoadEmptyListFails() {
	err := s.service.LoadWords([]string{" ", "1234"})
	s.ErrorIs(err, model.ErrEmptyWordList)
}

func (s *WordListSuite) TestLoadFromJSONFileWithUmlautKey() {
	path := s.writeFile("wordlist.json", `{"wörter": ["Apfel", "Birne", "Möhre"]}`)

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	s.Equal(3, s.service.WordCount())
	saved, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"APFEL", "BIRNE", "MÖHRE"}, saved)
}

func (s *WordListSuite) TestLoadFromTextFile() {
	path := s.writeFile("words.txt", "# fruit\napfel\n\nbirne\n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	words, err := s.service.Words(12)
	s.Require().NoError(err)
	s.Equal([]string{"APFEL", "BIRNE"}, words)
}

func (s *WordListSuite) TestLoadFromMissingFile() {
	err := s.service.LoadFromFile(s.ctx, "/does/not/exist.json")
	s.Error(err)
	s.False(s.service.IsLoaded())
}

func (s *WordListSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveWordList(s.ctx, []string{"TISCH", "STUHL"}))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))

	s.Equal(2, s.service.WordCount())
}

func (s *WordListSuite) TestLoadFromStaticSource() {
	s.Require().NoError(s.service.LoadFromSource(s.ctx, StaticSource{"cat", "dog"}))

	words, err := s.service.Words(5)
	s.Require().NoError(err)
	s.Equal([]string{"CAT", "DOG"}, words)
}

func (s *WordListSuite) TestShippedWordList() {
	s.Require().NoError(s.service.LoadFromFile(s.ctx, "../../../data/wordlist.json"))

	words, err := s.service.Words(12)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(words), 20)
}
