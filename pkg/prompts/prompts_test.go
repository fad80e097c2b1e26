// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

// answer replaces the promptui runners for the duration of a test. Text
// answers are validated the same way promptui would.
func answer(t *testing.T, text []string, index []int) {
	t.Helper()
	origPrompt, origSelect := promptUIRunner, promptUISelectRunner
	t.Cleanup(func() {
		promptUIRunner, promptUISelectRunner = origPrompt, origSelect
	})
	promptUIRunner = func(p promptui.Prompt) (string, error) {
		require.NotEmpty(t, text, "unexpected prompt %v", p.Label)
		next := text[0]
		text = text[1:]
		if p.Validate != nil {
			if err := p.Validate(next); err != nil {
				return "", err
			}
		}
		return next, nil
	}
	promptUISelectRunner = func(s promptui.Select) (int, string, error) {
		require.NotEmpty(t, index, "unexpected select %v", s.Label)
		next := index[0]
		index = index[1:]
		if items, ok := s.Items.([]string); ok {
			return next, items[next], nil
		}
		return next, "", nil
	}
}

func TestCaptureString(t *testing.T) {
	answer(t, []string{"  My Token  ", ""}, nil)
	p := NewPrompter()

	s, err := p.CaptureString("Token name")
	require.NoError(t, err)
	require.Equal(t, "My Token", s)

	_, err = p.CaptureString("Token name")
	require.Error(t, err)
}

func TestCapturePositiveBigInt(t *testing.T) {
	answer(t, []string{"1000000", "0", "1.5"}, nil)
	p := NewPrompter()

	n, err := p.CapturePositiveBigInt("Total supply")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000000), n)

	_, err = p.CapturePositiveBigInt("Total supply")
	require.Error(t, err)
	_, err = p.CapturePositiveBigInt("Total supply")
	require.Error(t, err)
}

func TestCaptureAmounts(t *testing.T) {
	answer(t, []string{"1.5", " 2 "}, nil)

	amounts, err := CaptureAmounts(NewPrompter(), []string{"0xa", "0xb"})
	require.NoError(t, err)
	require.Equal(t, []string{"1.5", "2"}, amounts)

	answer(t, []string{"1.0000000000000000001"}, nil)
	_, err = CaptureAmounts(NewPrompter(), []string{"0xa"})
	require.Error(t, err)
}

func TestCaptureAddress(t *testing.T) {
	addr := "0x1111111111111111111111111111111111111111"
	answer(t, []string{addr, "0x1234"}, nil)
	p := NewPrompter()

	a, err := p.CaptureAddress("Token contract")
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress(addr), a)

	_, err = p.CaptureAddress("Token contract")
	require.Error(t, err)
}

func TestCaptureSelects(t *testing.T) {
	answer(t, nil, []int{0, 1, 2, 1})
	p := NewPrompter()

	yes, err := p.CaptureYesNo("Confirm?")
	require.NoError(t, err)
	require.True(t, yes)

	yes, err = p.CaptureYesNo("Confirm?")
	require.NoError(t, err)
	require.False(t, yes)

	idx, err := p.CaptureIndex("Network", []any{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	choice, err := p.CaptureList("Mode", []string{"same", "custom"})
	require.NoError(t, err)
	require.Equal(t, "custom", choice)
}

func TestCaptureSelectInterrupted(t *testing.T) {
	orig := promptUISelectRunner
	t.Cleanup(func() { promptUISelectRunner = orig })
	promptUISelectRunner = func(promptui.Select) (int, string, error) {
		return 0, "", promptui.ErrInterrupt
	}

	_, err := NewPrompter().CaptureYesNo("Confirm?")
	require.True(t, errors.Is(err, promptui.ErrInterrupt))
}

func TestValidations(t *testing.T) {
	require.NoError(t, ValidateAmount("0.25"))
	require.Error(t, ValidateAmount("-1"))
	require.Error(t, ValidateAmount("one"))
	require.NoError(t, ValidateSymbol("TT"))
	require.Error(t, ValidateSymbol("T T"))
	require.Error(t, ValidateSymbol(" "))
}
