package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/prompt"

	"go.uber.org/zap"
)

// AgentService is the conversational orchestrator: it routes a user message
// to the study tools, executes them against the session context, and
// synthesizes a reply.
type AgentService interface {
	Process(ctx context.Context, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error)
	Clear(ctx context.Context, sessionID string) error
}

// toolCall is one resolved tool request, from native function calling, a JSON
// intent, or the keyword fallback.
type toolCall struct {
	Name string
	Args json.RawMessage
}

// toolExecutor runs one tool. Each executor decodes its own typed arguments.
type toolExecutor func(ctx context.Context, call toolCall, conversation *domain.ConversationContext, req *dto.AgentMessageRequest) (json.RawMessage, error)

type agentService struct {
	completion domain.CompletionService
	explain    ExplainService
	quiz       QuizService
	flashcards FlashcardService
	workflow   WorkflowService
	store      domain.ContextStore
	cfg        config.AgentConfig
	tools      map[string]toolExecutor
}

func NewAgentService(
	completion domain.CompletionService,
	explain ExplainService,
	quiz QuizService,
	flashcards FlashcardService,
	workflow WorkflowService,
	store domain.ContextStore,
	cfg config.AgentConfig,
) AgentService {
	s := &agentService{
		completion: completion,
		explain:    explain,
		quiz:       quiz,
		flashcards: flashcards,
		workflow:   workflow,
		store:      store,
		cfg:        cfg,
	}
	s.tools = map[string]toolExecutor{
		domain.ToolExplainContent:     s.executeExplain,
		domain.ToolGenerateQuiz:       s.executeQuiz,
		domain.ToolGenerateFlashcards: s.executeFlashcards,
		domain.ToolGenerateWorkflow:   s.executeWorkflow,
	}
	return s
}

func (s *agentService) Process(ctx context.Context, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error) {
	if strings.TrimSpace(req.Message) == "" && len(req.PDFData) == 0 {
		return nil, domain.NewInvalidInputError("message is required")
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	conversation, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load conversation context", err)
	}
	conversation.AddMessage("user", req.Message, s.cfg.MaxMessages)

	systemPrompt := prompt.AgentSystem(conversation.ContentForTool() != "")
	history := conversation.History(s.cfg.HistoryWindow)

	calls, directReply, err := s.selectTools(ctx, systemPrompt, history, req.Message)
	if err != nil {
		return nil, err
	}

	var (
		toolResults []dto.AgentToolResult
		reply       string
	)
	if len(calls) > 0 {
		toolResults = s.executeTools(ctx, orderCalls(calls), conversation, req)
		reply, err = s.synthesize(ctx, systemPrompt, toolResults, req.Message)
		if err != nil {
			return nil, err
		}
	} else {
		reply = directReply
		toolResults = []dto.AgentToolResult{}
	}

	conversation.AddMessage("assistant", reply, s.cfg.MaxMessages)
	if err := s.store.Save(ctx, conversation); err != nil {
		logger.Get().Error("failed to persist conversation context",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	return &dto.AgentMessageResponse{
		Message:     reply,
		ToolResults: toolResults,
		SessionID:   sessionID,
	}, nil
}

func (s *agentService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = "default"
	}
	return s.store.Clear(ctx, sessionID)
}

// selectTools decides which tools to run. Native function calling is
// preferred; a JSON intent in the reply text is next; the keyword fallback on
// the raw user message is last. When nothing matches, the model's text is
// returned as a direct reply.
func (s *agentService) selectTools(ctx context.Context, systemPrompt string, history []domain.Message, userMessage string) ([]toolCall, string, error) {
	conversationPrompt := prompt.AgentConversation(systemPrompt, history, userMessage)

	round, err := s.completion.CompleteWithTools(ctx, conversationPrompt, domain.AgentToolSchemas())
	if err != nil {
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != domain.CodeLLMServiceError {
			return nil, "", err
		}
		// Providers that reject native tool declarations still understand the
		// prompt-based protocol.
		logger.Get().Warn("native tool calling unavailable, using prompt fallback", zap.Error(err))
		text, fallbackErr := s.completion.Complete(ctx, prompt.AgentFunctionCalling(systemPrompt, userMessage))
		if fallbackErr != nil {
			return nil, "", fallbackErr
		}
		round = &domain.ToolRound{Text: text}
	}

	if len(round.Invocations) > 0 {
		calls := make([]toolCall, 0, len(round.Invocations))
		for _, invocation := range round.Invocations {
			if invocation.Name == "" {
				logger.Get().Warn("skipping tool invocation with empty name")
				continue
			}
			calls = append(calls, toolCall{Name: invocation.Name, Args: invocation.Arguments})
		}
		if len(calls) > 0 {
			return calls, "", nil
		}
	}

	if call, ok := parseJSONToolIntent(round.Text); ok {
		logger.Get().Info("tool selected from JSON intent", zap.String("tool", call.Name))
		return []toolCall{call}, "", nil
	}

	if call, ok := parseKeywordIntent(userMessage); ok {
		logger.Get().Info("tool selected from keyword fallback", zap.String("tool", call.Name))
		return []toolCall{call}, "", nil
	}

	return nil, round.Text, nil
}

// orderCalls puts explain_content ahead of the generators so dependent tools
// see the explained content. The order is otherwise preserved.
func orderCalls(calls []toolCall) []toolCall {
	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].Name == domain.ToolExplainContent && calls[j].Name != domain.ToolExplainContent
	})
	return calls
}

// executeTools runs each call in order. A failing tool records its error and
// the remaining tools still run.
func (s *agentService) executeTools(ctx context.Context, calls []toolCall, conversation *domain.ConversationContext, req *dto.AgentMessageRequest) []dto.AgentToolResult {
	results := make([]dto.AgentToolResult, 0, len(calls))
	for _, call := range calls {
		executor, ok := s.tools[call.Name]
		if !ok {
			results = append(results, dto.AgentToolResult{
				Tool:  call.Name,
				Error: fmt.Sprintf("Unknown tool: %s", call.Name),
			})
			continue
		}

		logger.Get().Info("executing agent tool", zap.String("tool", call.Name))
		result, err := executor(ctx, call, conversation, req)
		if err != nil {
			logger.Get().Warn("agent tool failed",
				zap.String("tool", call.Name),
				zap.Error(err))
			results = append(results, dto.AgentToolResult{Tool: call.Name, Error: err.Error()})
			continue
		}

		conversation.StoreToolResult(call.Name, result)
		results = append(results, dto.AgentToolResult{Tool: call.Name, Result: result})
	}
	return results
}

// synthesize turns executed tool results into the final user-facing reply.
func (s *agentService) synthesize(ctx context.Context, systemPrompt string, results []dto.AgentToolResult, userMessage string) (string, error) {
	return s.completion.Complete(ctx,
		prompt.AgentSynthesis(systemPrompt, digestToolResults(results), userMessage))
}

// digestToolResults summarizes tool outcomes for the synthesis prompt; full
// artifact payloads would blow up the prompt without improving the reply.
func digestToolResults(results []dto.AgentToolResult) string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		if result.Error != "" {
			lines = append(lines, fmt.Sprintf("%s: Error - %s", result.Tool, result.Error))
			continue
		}
		switch result.Tool {
		case domain.ToolExplainContent:
			var explained struct {
				Title string `json:"title"`
			}
			_ = json.Unmarshal(result.Result, &explained)
			lines = append(lines, fmt.Sprintf("%s: Explanation generated successfully. Title: %s", result.Tool, explained.Title))
		case domain.ToolGenerateQuiz:
			var quiz struct {
				NumQuestions int `json:"num_questions"`
			}
			_ = json.Unmarshal(result.Result, &quiz)
			lines = append(lines, fmt.Sprintf("%s: Generated %d quiz questions", result.Tool, quiz.NumQuestions))
		case domain.ToolGenerateFlashcards:
			var cards struct {
				NumCards int `json:"num_cards"`
			}
			_ = json.Unmarshal(result.Result, &cards)
			lines = append(lines, fmt.Sprintf("%s: Generated %d flashcards", result.Tool, cards.NumCards))
		case domain.ToolGenerateWorkflow:
			lines = append(lines, fmt.Sprintf("%s: Workflow diagram generated successfully", result.Tool))
		default:
			lines = append(lines, fmt.Sprintf("%s: completed", result.Tool))
		}
	}
	return strings.Join(lines, "\n")
}

// --- tool executors ---

type explainArgs struct {
	Text       string `json:"text"`
	URL        string `json:"url"`
	Complexity string `json:"complexity"`
}

// topicRequestMaxLen and topicRequestMaxWords bound what counts as a topic
// request rather than pasted study material.
const (
	topicRequestMaxLen   = 200
	topicRequestMaxWords = 20
)

func (s *agentService) executeExplain(ctx context.Context, call toolCall, conversation *domain.ConversationContext, req *dto.AgentMessageRequest) (json.RawMessage, error) {
	var args explainArgs
	if len(call.Args) > 0 {
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, domain.NewInvalidInputError("Invalid explain_content arguments")
		}
	}
	if args.Complexity == "" {
		args.Complexity = domain.DifficultyMedium
	}

	text := args.Text
	if text == "" && args.URL == "" && len(req.PDFData) == 0 {
		if content := conversation.ContentForTool(); content != "" {
			text = content
		} else {
			return nil, domain.NewInvalidInputError("No content provided. Please provide text, URL, or upload a PDF.")
		}
	}

	// A short topic-shaped message becomes real study material before it is
	// explained.
	if text != "" && args.URL == "" && len(req.PDFData) == 0 && looksLikeTopicRequest(text) {
		logger.Get().Info("expanding topic request into content", zap.Int("topic_length", len(text)))
		generated, err := s.completion.Complete(ctx, prompt.TopicExpansion(text))
		if err == nil && len(generated) > topicRequestMaxLen {
			text = generated
		} else if err != nil {
			logger.Get().Warn("topic expansion failed, using original text", zap.Error(err))
		}
	}

	explanation, err := s.explain.Generate(ctx, &dto.ExplainRequest{
		ContentRequest: dto.ContentRequest{
			Text:        text,
			URL:         args.URL,
			PDFData:     req.PDFData,
			PDFFilename: req.PDFFilename,
		},
		Complexity: args.Complexity,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(explanation)
}

func looksLikeTopicRequest(text string) bool {
	if len(text) >= topicRequestMaxLen {
		return false
	}
	if strings.ContainsAny(text, ".!?\n") {
		return false
	}
	return len(strings.Fields(text)) < topicRequestMaxWords
}

type quizArgs struct {
	Content      string `json:"content"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

func (s *agentService) executeQuiz(ctx context.Context, call toolCall, conversation *domain.ConversationContext, _ *dto.AgentMessageRequest) (json.RawMessage, error) {
	var args quizArgs
	if len(call.Args) > 0 {
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, domain.NewInvalidInputError("Invalid generate_quiz arguments")
		}
	}
	content, err := contentOrContext(args.Content, conversation)
	if err != nil {
		return nil, err
	}
	if args.NumQuestions == 0 {
		args.NumQuestions = 10
	}
	if args.Difficulty == "" {
		args.Difficulty = domain.DifficultyMedium
	}

	generated, err := s.quiz.Generate(ctx, &dto.QuizGenerateRequest{
		ContentRequest: dto.ContentRequest{Text: content},
		NumQuestions:   clamp(args.NumQuestions, MinQuizQuestions, MaxQuizQuestions),
		Difficulty:     args.Difficulty,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]interface{}{
		"quiz":          generated.Quiz,
		"num_questions": len(generated.Quiz),
		"difficulty":    args.Difficulty,
	})
}

type flashcardArgs struct {
	Content      string `json:"content"`
	NumCards     int    `json:"num_cards"`
	WordsPerCard int    `json:"words_per_card"`
}

func (s *agentService) executeFlashcards(ctx context.Context, call toolCall, conversation *domain.ConversationContext, _ *dto.AgentMessageRequest) (json.RawMessage, error) {
	var args flashcardArgs
	if len(call.Args) > 0 {
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, domain.NewInvalidInputError("Invalid generate_flashcards arguments")
		}
	}
	content, err := contentOrContext(args.Content, conversation)
	if err != nil {
		return nil, err
	}
	if args.NumCards == 0 {
		args.NumCards = 10
	}
	if args.WordsPerCard == 0 {
		args.WordsPerCard = DefaultCardWords
	}

	generated, err := s.flashcards.Generate(ctx, &dto.FlashcardGenerateRequest{
		ContentRequest: dto.ContentRequest{Text: content},
		NumCards:       clamp(args.NumCards, MinFlashcards, MaxFlashcards),
		WordsPerCard:   clamp(args.WordsPerCard, MinWordsPerCard, MaxWordsPerCard),
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]interface{}{
		"flashcards":     generated.Flashcards,
		"num_cards":      len(generated.Flashcards),
		"words_per_card": args.WordsPerCard,
	})
}

type workflowArgs struct {
	Content string `json:"content"`
}

func (s *agentService) executeWorkflow(ctx context.Context, call toolCall, conversation *domain.ConversationContext, _ *dto.AgentMessageRequest) (json.RawMessage, error) {
	var args workflowArgs
	if len(call.Args) > 0 {
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, domain.NewInvalidInputError("Invalid generate_workflow arguments")
		}
	}
	content, err := contentOrContext(args.Content, conversation)
	if err != nil {
		return nil, err
	}

	diagram, err := s.workflow.Generate(ctx, &dto.WorkflowGenerateRequest{
		ContentRequest: dto.ContentRequest{Text: content},
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(diagram)
}

// contentOrContext substitutes the session's explained content when a
// generator is called without its own.
func contentOrContext(content string, conversation *domain.ConversationContext) (string, error) {
	if content != "" {
		return content, nil
	}
	if fromContext := conversation.ContentForTool(); fromContext != "" {
		return fromContext, nil
	}
	return "", domain.NewInvalidInputError("No content available. Please explain content first.")
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
