package pptx

// Part names of the package layout the reader and writer work with.
const (
	partContentTypes     = "[Content_Types].xml"
	partPackageRels      = "_rels/.rels"
	partCoreProps        = "docProps/core.xml"
	partAppProps         = "docProps/app.xml"
	partPresentation     = "ppt/presentation.xml"
	partPresentationRels = "ppt/_rels/presentation.xml.rels"
	partTheme            = "ppt/theme/theme1.xml"
	partSlideMaster      = "ppt/slideMasters/slideMaster1.xml"
	partSlideLayout      = "ppt/slideLayouts/slideLayout1.xml"
)
