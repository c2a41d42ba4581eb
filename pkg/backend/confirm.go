/*
 *     Copyright 2025 The tunectl Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package backend

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfirmFunc asks the user to confirm a destructive operation. Tests inject
// their own implementation instead of simulating a terminal.
type ConfirmFunc func(prompt string) bool

// StdinConfirm prompts on stdout and reads one line from stdin. Only an
// answer starting with 'y' or 'Y' confirms.
func StdinConfirm(prompt string) bool {
	fmt.Print(prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	return affirmative(line)
}

func affirmative(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && (line[0] == 'y' || line[0] == 'Y')
}
