// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package prompts provides user interaction primitives following UNIX conventions.

# Mode Detection

Non-interactive mode is enabled when ANY of these is true:

  - --non-interactive is passed
  - AUTODEPLOY_NON_INTERACTIVE=1/true/yes/on
  - CI=1/true (GitHub Actions, GitLab CI, etc.)
  - stdin is not a TTY (piped/redirected/scripted)

# Option Precedence

 1. Flags (--symbol=TT)
 2. Environment variables (AUTODEPLOY_SYMBOL=TT)
 3. .env file in the working directory
 4. Config file (./autodeploy.yaml)
 5. Defaults
 6. Prompts (only if interactive)

Prompts only fill values that remain empty after 1-5:

	v := prompts.NewValidator("autodeploy", app.Interactive())
	v.Require(&symbol, prompts.MissingOpt{
	    Flag:   "--symbol",
	    Env:    "AUTODEPLOY_SYMBOL",
	    Prompt: "Token symbol",
	})
	if err := v.Resolve(func(m prompts.MissingOpt) (string, error) {
	    return app.Prompt.CaptureString(m.Prompt)
	}); err != nil {
	    return err
	}

When non-interactive and required values are missing, errors look like:

	missing required options:
	  --symbol (or AUTODEPLOY_SYMBOL)

	run 'autodeploy --help' to see all options
*/
package prompts
