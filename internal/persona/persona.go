// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package persona provides the static background context prepended to every
// model request.
//
// The persona is a block of biographical and project facts about the subject
// of the portfolio. It is loaded once at startup and shared read-only across
// all requests in a session; nothing in the application mutates it afterwards.
package persona

import (
	"fmt"
	"os"
	"strings"
)

// defaultContext is the built-in persona used when no override file is
// configured. It is the single source of truth for both the widget and the
// relay server, so the two can never drift apart.
const defaultContext = `You are an AI assistant for Shashank Singh's portfolio website. You help visitors learn about Shashank's background, skills, projects, and achievements.

About Shashank Singh:
- Full Name: Shashank Singh
- Email: shashanksingh9048@gmail.com
- LinkedIn: https://www.linkedin.com/in/shashank-singh-55025a298/
- GitHub: https://github.com/Shashank9048
- LeetCode: https://leetcode.com/u/Shashank96300/
- Mobile: +91-9630023003
- Education: B.Tech in Computer Science & Engineering, Lovely Professional University (2023–2027)

Skills:
- Languages: Java, C++, JavaScript, Bash, Shell Scripting
- Frontend: HTML, CSS, React
- Backend: MySQL, MongoDB, Express, Node.js
- Cloud: AWS, Apache, Google Cloud
- OS: Linux (RedHat, Ubuntu), Windows

Experience:
- Cloud Computing Intern @ InternsVeda Edutech Pvt. Ltd. (Dec 2024 – Jan 2025)

Achievements:
- Completed LeetCode 100 Days Challenge (Jan 2025)
- President – Club Palo Alto (College Tech Club)
- 1st Prize in Dehradun Science Exhibition

Major Projects:
1. University Management System (UMS) - Complete student management dashboard
2. SkillSeed - AI-Powered Coding Education Platform
3. FitLife Planner Pro + FitBot Assistant - AI-Integrated Fitness Planner with Gemini API
4. KisanSathi - Farmer Support Platform for agricultural queries
5. Smart Directory Management System - File organizer and duplicate finder

Keep responses helpful, professional, and focused on Shashank's qualifications and projects. Be conversational but informative.`

// Default returns the built-in persona context.
func Default() string {
	return defaultContext
}

// Load reads a persona context from a file. An empty path returns the
// built-in default. A file that is empty after trimming is rejected, since a
// blank persona would leave the model with no grounding at all.
func Load(path string) (string, error) {
	if path == "" {
		return defaultContext, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read persona file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("persona file %s is empty", path)
	}

	return text, nil
}
