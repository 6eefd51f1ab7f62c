package gen

import (
	"context"
)

// High-level generation helpers built on the pipeline. Each one pairs a
// fixed prompt template with the parser that consumes its output.

const episodeTemplate Template = `
	Please generate a episode for the interaction between {participants} regarding {topic}.
	You should generate the personal backgrounds and goals in this interaction.
	Use the following extra info if given: {extra_info}
	Please use the following format:
	{format_instructions}
`

// GenerateEpisode generates a complete interaction episode between two
// participants, including backgrounds, goals, the conversation, and
// ratings.
func GenerateEpisode(ctx context.Context, p *Pipeline, model, participants, topic, extraInfo string) (*Script, error) {
	return Generate(ctx, p, model, episodeTemplate, map[string]string{
		"participants": participants,
		"topic":        topic,
		"extra_info":   extraInfo,
	}, ScriptParser{})
}

const goalTemplate Template = `
	Please generate your goal based on the background:
	{background}
`

// GenerateGoal generates an agent goal from a background description.
func GenerateGoal(ctx context.Context, p *Pipeline, model, background string) (string, error) {
	return Generate(ctx, p, model, goalTemplate, map[string]string{
		"background": background,
	}, StringParser{})
}

// BasicProfile is the seed information for profile expansion.
type BasicProfile struct {
	Name            string
	Age             string
	Gender          string
	Pronoun         string
	Occupation      string
	BigFive         string
	MoralFoundation string
	Schwartz        string
	DecisionStyle   string
	Secret          string
}

const profileTemplate Template = `
	Please expand a fictional background for {name}. Here is the basic information:
	{name}'s age: {age}
	{name}'s gender identity: {gender_identity}
	{name}'s pronoun: {pronoun}
	{name}'s occupation: {occupation}
	{name}'s big 5 personality traits: {bigfive}
	{name}'s moral Foundation: think {mft} is more important than others
	{name}'s Schwartz portrait value: {schwartz}
	{name}'s decision-making style: {decision_style}
	{name}'s secret: {secret}
	Include the previous information in the background.
	Then expand the personal backgrounds with concrete details (e.g, look, family, hobbies, friends and etc.)
	For the personality and values (e.g., MBTI, moral foundation, and etc.),
	remember to use examples and behaviors in the person's life to demonstrate it.
`

// GenerateInitProfile expands a basic profile into a full fictional
// background.
func GenerateInitProfile(ctx context.Context, p *Pipeline, model string, basic BasicProfile) (string, error) {
	return Generate(ctx, p, model, profileTemplate, map[string]string{
		"name":            basic.Name,
		"age":             basic.Age,
		"gender_identity": basic.Gender,
		"pronoun":         basic.Pronoun,
		"occupation":      basic.Occupation,
		"bigfive":         basic.BigFive,
		"mft":             basic.MoralFoundation,
		"schwartz":        basic.Schwartz,
		"decision_style":  basic.DecisionStyle,
		"secret":          basic.Secret,
	}, StringParser{})
}
