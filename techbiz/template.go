package techbiz

import (
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/theme"
)

// Slide text of the generated template.
var (
	TemplateTitle    = "科技商业演示模板"
	TemplateSubtitle = "Tech-Business Presentation Template"

	AgendaItems = []string{
		"项目概述与背景",
		"核心功能与特性",
		"技术架构方案",
		"实施计划与时间表",
		"总结与展望",
	}

	OverviewItems = []string{
		"项目背景：响应市场需求，提供创新解决方案",
		"目标定位：成为行业领先的技术服务平台",
		"核心价值：提升效率、降低成本、优化体验",
		"预期成果：实现业务增长30%以上",
	}

	FeaturesLeft = []string{
		"智能数据分析",
		"实时监控预警",
		"自动化流程管理",
		"多维度报表生成",
	}

	FeaturesRight = []string{
		"云端协同办公",
		"移动端随时访问",
		"安全加密传输",
		"7×24小时技术支持",
	}

	ArchitectureItems = []string{
		"前端：React + TypeScript 响应式设计",
		"后端：微服务架构，支持高并发处理",
		"数据库：分布式存储，保障数据安全",
		"部署：容器化部署，支持弹性扩展",
	}

	// KeyFeatures lists the style rules shown on the master deck.
	KeyFeatures = []string{
		"主题色：主色 #0B3B71，辅色 #0CAAAA",
		"背景色：中性 #F5F7FA",
		"字体：中文 Noto Sans CJK / PingFang SC，英文 Montserrat / Arial",
		"标题：56-64pt 加粗",
		"正文：22-28pt",
		"版式：16:9 宽屏格式",
	}
)

// Template builds the six-slide compact template deck.
func Template() *model.Deck {
	b := NewBuilder(theme.Compact())
	b.Deck.Metadata.Title = TemplateTitle
	b.Deck.Metadata.Subject = TemplateSubtitle

	b.AddTitleSlide(TemplateTitle, TemplateSubtitle)
	b.AddAgendaSlide("目录", AgendaItems)
	b.AddContentSlide("项目概述", OverviewItems)
	b.AddTwoColumnSlide("核心功能", FeaturesLeft, FeaturesRight)
	b.AddContentSlide("技术架构", ArchitectureItems)
	b.AddConclusionSlide("谢谢！", "期待与您的合作\nThank you for your attention")

	return b.Deck
}

// Master builds the four-slide widescreen master deck. Slides use solid
// backgrounds and placeholder-marked titles instead of full-slide shapes.
func Master() *model.Deck {
	deck := theme.Widescreen().NewDeck()
	deck.Metadata.Title = TemplateTitle
	deck.Metadata.Subject = TemplateSubtitle

	addMasterTitle(deck)
	addMasterFeatures(deck)
	addMasterTwoColumn(deck)
	addMasterConclusion(deck)

	return deck
}

// Widescreen placeholder frames.
var (
	masterCenterTitle = model.NewRect(model.Inches(1.0), model.Inches(2.33), model.Inches(11.333), model.Inches(1.6))
	masterSubtitle    = model.NewRect(model.Inches(2.0), model.Inches(4.25), model.Inches(9.333), model.Inches(1.75))
	masterTitle       = model.NewRect(model.Inches(0.667), model.Inches(0.3), model.Inches(12.0), model.Inches(1.25))
	masterBody        = model.NewRect(model.Inches(0.667), model.Inches(1.75), model.Inches(12.0), model.Inches(4.95))
)

func arial(size float64, bold bool, c model.Color) model.Font {
	f := font(size, bold, c)
	f.Name = theme.LatinFont
	return f
}

func addPlaceholder(s *model.Slide, ph model.PlaceholderType, frame model.Rect) *model.Shape {
	sh := s.AddTextBox(frame)
	sh.Placeholder = ph
	sh.Text.WordWrap = true
	return sh
}

func addMasterTitle(deck *model.Deck) {
	s := deck.AddSlide()
	s.Background = theme.BackgroundGray.Ptr()

	title := addPlaceholder(s, model.PlaceholderCtrTitle, masterCenterTitle)
	title.Text.Anchor = model.AnchorMiddle
	setText(title.Text.Paragraph(0), TemplateTitle, model.AlignCenter, arial(60, true, theme.Primary))

	sub := addPlaceholder(s, model.PlaceholderSubTitle, masterSubtitle)
	setText(sub.Text.Paragraph(0), TemplateSubtitle, model.AlignCenter, arial(32, false, theme.Secondary))
}

func addMasterFeatures(deck *model.Deck) {
	s := deck.AddSlide()
	s.Background = theme.BackgroundGray.Ptr()

	title := addPlaceholder(s, model.PlaceholderTitle, masterTitle)
	setText(title.Text.Paragraph(0), "主要特点 / Key Features", model.AlignInherit, arial(48, true, theme.Primary))

	// Clear keeps one empty paragraph; the items follow it.
	body := addPlaceholder(s, model.PlaceholderBody, masterBody)
	body.Text.Clear()
	for _, item := range KeyFeatures {
		p := body.Text.AddParagraph()
		setText(p, item, model.AlignInherit, arial(24, false, theme.DarkText))
		p.LineSpacing = 1.3
		p.SpaceBefore = 8
		p.SpaceAfter = 8
	}
}

func addMasterTwoColumn(deck *model.Deck) {
	s := deck.AddSlide()
	s.Background = theme.BackgroundGray.Ptr()

	title := addPlaceholder(s, model.PlaceholderTitle, masterTitle)
	setText(title.Text.Paragraph(0), "双栏布局示例 / Two-Column Layout", model.AlignInherit, arial(48, true, theme.Primary))

	columns := []struct {
		x       float64
		heading string
	}{
		{0.5, "左栏内容 / Left Column"},
		{7.0, "右栏内容 / Right Column"},
	}
	for _, col := range columns {
		box := s.AddTextBox(model.NewRect(model.Inches(col.x), model.Inches(2.0), model.Inches(6.0), model.Inches(4.5)))
		box.Text.WordWrap = true
		setText(box.Text.Paragraph(0), col.heading, model.AlignInherit, arial(28, true, theme.Primary))
		setText(box.Text.AddParagraph(), "• 要点一\n• 要点二\n• 要点三", model.AlignInherit, arial(22, false, theme.DarkText))
	}
}

func addMasterConclusion(deck *model.Deck) {
	s := deck.AddSlide()
	s.Background = theme.Primary.Ptr()

	title := addPlaceholder(s, model.PlaceholderTitle, masterTitle)
	setText(title.Text.Paragraph(0), "结论 / Conclusion", model.AlignCenter, arial(56, true, theme.White))

	body := addPlaceholder(s, model.PlaceholderBody, masterBody)
	setText(body.Text.Paragraph(0), "谢谢 / Thank You", model.AlignCenter, arial(48, false, theme.White))
}
