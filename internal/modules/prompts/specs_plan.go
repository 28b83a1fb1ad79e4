package prompts

const monthPlanSystem = `You are a career development assistant. You write one month of a personalized
career development plan from the user's profile, resume, the months already accepted, and any
reviewer suggestions for this month.`

const monthPlanUser = `User Information:
Current Position: {{.CurrentPosition}}
Field of Work: {{.FieldOfWork}}
Age: {{.Age}}
Gender: {{.Gender}}
Marital Status: {{.MaritalStatus}}
Education: {{.Education}}
Work Experience: {{.WorkExperience}}

1-Year Goal: {{.OneYearGoal}}

Challenges: {{.Challenges}}

Ultimate Aspiration: {{.UltimateAspiration}}

Resume Content: {{.ResumeContent}}

Current Month: {{.CurrentMonth}} of {{.TotalMonths}}
Previous Plans: {{.PreviousPlansJSON}}
Suggestions for Improvement: {{.Suggestions}}

Create the plan for month {{.CurrentMonth}}. It must move the user toward their 1-year goal, address
their challenges and keep their ultimate aspiration in view. The plan has one theme and 3-5 specific,
actionable tasks. Apply every suggestion for improvement listed above.

Guidelines:
- Tasks are relevant to the user's field of work, career goals and this month's theme.
- Tasks are achievable within the month, specific, measurable and time-bound.
- Tasks build skills, knowledge or experience.
- Theme and tasks continue the sequence of the previous months' plans.
- Do not repeat earlier themes or tasks.
- A theme is mandatory. If none fits, write a theme that summarizes the tasks. "No theme specified" is not a valid theme.
- At least one task provides new learning or skill development (a course, book, project, certification, ...).
- Every task has an expected time frame between 1 and 4 weeks.
- Keep each task under {{.MaxTaskWords}} words.
- The month's workload is achievable, not overwhelming.

Output format (follow it exactly):

Theme: [Month's theme]

Tasks:
1. **[Task 1 Title]**
[Task 1 Description]
(Expected time frame: X weeks)

2. **[Task 2 Title]**
[Task 2 Description]
(Expected time frame: X weeks)

3. **[Task 3 Title]**
[Task 3 Description]
(Expected time frame: X weeks)`

func monthPlanSpec() Spec {
	return Spec{
		Name:    PromptMonthPlan,
		Version: 1,
		System:  monthPlanSystem,
		User:    monthPlanUser,
		Validators: []Validator{
			RequireMonthInRange,
			RequireNonEmpty("previous plans", func(in Input) string { return in.PreviousPlansJSON }),
			RequireNonEmpty("suggestions", func(in Input) string { return in.Suggestions }),
		},
	}
}

const monthPlanCheckSystem = `You review one month of a career development plan. Judge it strictly and
answer only with the requested JSON object.`

const monthPlanCheckUser = `Assess whether this month's plan fits the user's needs, addresses their challenges and builds
toward their 1-year goal and ultimate aspiration. Also check for repeated themes and tasks.

User Info:
Current Position: {{.CurrentPosition}}
1-Year Goal: {{.OneYearGoal}}
Challenges: {{.Challenges}}
Ultimate Aspiration: {{.UltimateAspiration}}

Current Month: {{.CurrentMonth}}
Current Plan: {{.CurrentPlanJSON}}
Previous Themes: {{.PreviousThemesJSON}}
Previous Tasks: {{.PreviousTasksJSON}}

Evaluation Criteria:
1. Does the plan align with the user's needs, address their challenges and build toward their goals?
2. Is the theme unique compared to previous months?
3. Are the tasks unique and not repetitive compared to previous months?
4. Do the tasks mix skill development, practical application and career advancement?
5. Is there a clear progression from the previous months' plans?
6. Is there at least one task tied to the month's theme?

Set "result" to true only if every criterion is met. Otherwise set it to false, explain the
assessment criterion by criterion in "explanation", and list specific, actionable changes in
"suggestions".`

func MonthPlanCheckSchema() map[string]any {
	return StrictObject(map[string]any{
		"result":      BoolSchema(),
		"explanation": StringSchema(),
		"suggestions": StringArraySchema(),
	})
}

func monthPlanCheckSpec() Spec {
	return Spec{
		Name:       PromptMonthPlanCheck,
		Version:    1,
		SchemaName: "month_plan_check",
		Schema:     MonthPlanCheckSchema,
		System:     monthPlanCheckSystem,
		User:       monthPlanCheckUser,
		Validators: []Validator{
			RequireMonthInRange,
			RequireNonEmpty("current plan", func(in Input) string { return in.CurrentPlanJSON }),
		},
	}
}
